package service

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vanshika/bankcore/internal/domain"
)

// Ledger is the append-only transaction registry. Appends are safe for
// concurrent use; the total order of entries reflects creation order, and
// identifiers issued by Record are monotonic with it.
type Ledger struct {
	mu      sync.RWMutex
	entries []domain.Transaction
	seq     *domain.Sequence
	clock   func() time.Time
}

// NewLedger returns an empty ledger with a fresh TXN sequence.
func NewLedger() *Ledger {
	return &Ledger{
		seq:   domain.NewSequence("TXN"),
		clock: time.Now,
	}
}

// WithClock overrides the timestamp source, for tests.
func (l *Ledger) WithClock(clock func() time.Time) *Ledger {
	l.clock = clock
	return l
}

// Record assigns an identifier and timestamp, appends the entry, and
// returns it. There is no validation or dedup: the ledger trusts its
// callers to have applied the account policy already.
func (l *Ledger) Record(accountNumber string, typ domain.TransactionType, amount, balanceAfter decimal.Decimal, transferID string) domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	tx := domain.Transaction{
		ID:            l.seq.Next(),
		AccountNumber: accountNumber,
		Type:          typ,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
		TransferID:    transferID,
		Timestamp:     l.clock(),
	}
	l.entries = append(l.entries, tx)
	return tx
}

// Append restores an already-built entry, advancing the id sequence past
// its identifier. This is the load path from storage.
func (l *Ledger) Append(tx domain.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, tx)
	l.seq.Advance(tx.ID)
}

// All returns a copy of every entry in insertion order.
func (l *Ledger) All() []domain.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.Transaction(nil), l.entries...)
}

// Len reports the total number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// ByAccount returns the entries for one account, preserving insertion order.
func (l *Ledger) ByAccount(accountNumber string) []domain.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Transaction
	for _, tx := range l.entries {
		if tx.AccountNumber == accountNumber {
			out = append(out, tx)
		}
	}
	return out
}

// ByAccountNewestFirst returns the account's entries sorted by timestamp,
// newest first. Entries with equal timestamps keep insertion order.
func (l *Ledger) ByAccountNewestFirst(accountNumber string) []domain.Transaction {
	out := l.ByAccount(accountNumber)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// ByAccountLargestFirst returns the account's entries sorted by amount,
// largest first.
func (l *Ledger) ByAccountLargestFirst(accountNumber string) []domain.Transaction {
	out := l.ByAccount(accountNumber)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount) })
	return out
}

// TotalByAccount sums the amounts of the account's entries.
func (l *Ledger) TotalByAccount(accountNumber string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.ByAccount(accountNumber) {
		total = total.Add(tx.Amount)
	}
	return total
}

// CountByAccount reports how many entries the account has.
func (l *Ledger) CountByAccount(accountNumber string) int {
	return len(l.ByAccount(accountNumber))
}
