package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vanshika/bankcore/internal/domain"
)

// AccountManager is the keyed account registry. Lookups are O(1); the map
// only grows, so the legacy StorageExhausted failure mode does not apply.
// The manager owns the account and customer id sequences so identifier
// allocation stays isolated per instance.
type AccountManager struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	accountSeq  *domain.Sequence
	customerSeq *domain.Sequence
}

// NewAccountManager returns an empty registry with fresh id sequences.
func NewAccountManager() *AccountManager {
	return &AccountManager{
		accounts:    make(map[string]*domain.Account),
		accountSeq:  domain.NewSequence("ACC"),
		customerSeq: domain.NewSequence("CUST"),
	}
}

// AccountSequence exposes the allocator used for new account numbers.
func (m *AccountManager) AccountSequence() *domain.Sequence { return m.accountSeq }

// CustomerSequence exposes the allocator used for new customer ids.
func (m *AccountManager) CustomerSequence() *domain.Sequence { return m.customerSeq }

// Add registers an account under its number.
func (m *AccountManager) Add(account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[account.Number()]; exists {
		return fmt.Errorf("account %s already registered", account.Number())
	}
	m.accounts[account.Number()] = account
	return nil
}

// Find returns the account with the given number, or AccountNotFound.
func (m *AccountManager) Find(number string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[number]
	if !ok {
		return nil, domain.NewAccountNotFound(number)
	}
	return account, nil
}

// All returns every registered account, sorted by account number.
func (m *AccountManager) All() []*domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		out = append(out, account)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}

// Len reports the number of registered accounts.
func (m *AccountManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}

// Restore registers accounts rebuilt from storage and advances the account
// sequence past their numbers so new accounts cannot collide with them.
func (m *AccountManager) Restore(accounts []*domain.Account) error {
	for _, account := range accounts {
		if err := m.Add(account); err != nil {
			return fmt.Errorf("restore accounts: %w", err)
		}
		m.accountSeq.Advance(account.Number())
	}
	return nil
}
