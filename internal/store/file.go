package store

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanshika/bankcore/internal/domain"
)

const (
	accountsFile     = "accounts.txt"
	transactionsFile = "transactions.txt"
)

// FileStore reads and writes the flat files under one data directory.
// Loads are lenient: blank lines are skipped silently and malformed lines
// are logged and skipped, so one corrupt record cannot poison a restore.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore builds a store rooted at dir. A nil logger falls back to
// slog.Default.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{dir: dir, logger: logger.With("component", "store")}
}

// AccountsPath returns the path of the accounts file.
func (s *FileStore) AccountsPath() string { return filepath.Join(s.dir, accountsFile) }

// TransactionsPath returns the path of the transactions file.
func (s *FileStore) TransactionsPath() string { return filepath.Join(s.dir, transactionsFile) }

// SaveAccounts writes every account, one record per line, replacing the
// previous file.
func (s *FileStore) SaveAccounts(accounts []*domain.Account) error {
	lines := make([]string, 0, len(accounts))
	for _, a := range accounts {
		lines = append(lines, EncodeAccount(a))
	}
	return s.writeLines(s.AccountsPath(), lines)
}

// SaveTransactions writes every ledger entry, one record per line,
// replacing the previous file.
func (s *FileStore) SaveTransactions(txs []domain.Transaction) error {
	lines := make([]string, 0, len(txs))
	for _, tx := range txs {
		lines = append(lines, EncodeTransaction(tx))
	}
	return s.writeLines(s.TransactionsPath(), lines)
}

// LoadAccounts reads the accounts file. A missing file is an empty
// dataset, not an error. Restored customers draw ids from customerSeq.
func (s *FileStore) LoadAccounts(customerSeq *domain.Sequence) ([]*domain.Account, error) {
	var accounts []*domain.Account
	err := s.readLines(s.AccountsPath(), func(line string) {
		account, err := ParseAccount(line, customerSeq)
		if err != nil {
			s.logger.Warn("skipping malformed account record", "line", line, "error", err)
			return
		}
		accounts = append(accounts, account)
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// LoadTransactions reads the transactions file. A missing file is an
// empty dataset, not an error.
func (s *FileStore) LoadTransactions() ([]domain.Transaction, error) {
	var txs []domain.Transaction
	err := s.readLines(s.TransactionsPath(), func(line string) {
		tx, err := ParseTransaction(line)
		if err != nil {
			s.logger.Warn("skipping malformed transaction record", "line", line, "error", err)
			return
		}
		txs = append(txs, tx)
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *FileStore) writeLines(path string, lines []string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) readLines(path string, handle func(line string)) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		handle(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
