// Package archive copies ledger entries into Postgres for long-term
// querying. Like the graph mirror it is an optional collaborator: the
// in-memory ledger stays authoritative and the archive is replayed from
// the flat files.
package archive

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/vanshika/bankcore/internal/domain"
)

const createSchema = `
CREATE TABLE IF NOT EXISTS ledger_entries (
	transaction_id TEXT PRIMARY KEY,
	account_number TEXT NOT NULL,
	type           TEXT NOT NULL,
	amount         NUMERIC(19, 4) NOT NULL,
	balance_after  NUMERIC(19, 4) NOT NULL,
	transfer_id    TEXT,
	recorded_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS ledger_entries_account_idx ON ledger_entries (account_number)`

const insertEntry = `
INSERT INTO ledger_entries
	(transaction_id, account_number, type, amount, balance_after, transfer_id, recorded_at)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
ON CONFLICT (transaction_id) DO NOTHING`

// Store is a Postgres-backed ledger archive.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres and pings it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping archive database: %w", err)
	}
	return &Store{db: db}, nil
}

// Init creates the archive schema if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSchema); err != nil {
		return fmt.Errorf("create archive schema: %w", err)
	}
	return nil
}

// ArchiveTransaction inserts one ledger entry. Re-archiving an already
// stored entry is a no-op, so replays are idempotent.
func (s *Store) ArchiveTransaction(ctx context.Context, tx domain.Transaction) error {
	_, err := s.db.ExecContext(ctx, insertEntry,
		tx.ID,
		tx.AccountNumber,
		tx.Type.String(),
		tx.Amount.String(),
		tx.BalanceAfter.String(),
		tx.TransferID,
		tx.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("archive transaction %s: %w", tx.ID, err)
	}
	return nil
}

// CountForAccount reports how many entries are archived for one account.
func (s *Store) CountForAccount(ctx context.Context, accountNumber string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ledger_entries WHERE account_number = $1`, accountNumber).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count archived entries for %s: %w", accountNumber, err)
	}
	return count, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
