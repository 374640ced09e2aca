package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vanshika/bankcore/internal/domain"
)

// OpenAccountRequest carries everything needed to open an account for a
// new customer.
type OpenAccountRequest struct {
	AccountType    domain.AccountType
	CustomerType   domain.CustomerType
	Name           string
	Age            int
	Contact        string
	Address        string
	InitialDeposit decimal.Decimal
}

// AccountOpening creates customers and accounts and records the initial
// deposit on the ledger.
type AccountOpening struct {
	accounts *AccountManager
	ledger   *Ledger
}

// NewAccountOpening wires the opening service to its registries.
func NewAccountOpening(accounts *AccountManager, ledger *Ledger) *AccountOpening {
	return &AccountOpening{accounts: accounts, ledger: ledger}
}

// Open creates the customer and account, registers the account, and
// appends the initial Deposit ledger entry. The initial deposit becomes
// the starting balance and must be positive; savings accounts must start
// at or above the minimum balance.
func (s *AccountOpening) Open(req OpenAccountRequest) (*domain.Account, error) {
	if req.InitialDeposit.Sign() <= 0 {
		return nil, domain.NewInvalidAmount("initial deposit must be greater than 0")
	}
	if req.AccountType == domain.SavingsAccount && req.InitialDeposit.LessThan(domain.DefaultMinimumBalance) {
		return nil, domain.NewInvalidAmount(fmt.Sprintf(
			"initial deposit for a savings account must be at least %s",
			domain.FormatAmount(domain.DefaultMinimumBalance)))
	}

	customer := domain.NewCustomer(s.accounts.CustomerSequence(), req.CustomerType, req.Name, req.Age, req.Contact, req.Address)

	var account *domain.Account
	switch req.AccountType {
	case domain.SavingsAccount:
		account = domain.NewSavingsAccount(s.accounts.AccountSequence(), customer, req.InitialDeposit)
	case domain.CheckingAccount:
		account = domain.NewCheckingAccount(s.accounts.AccountSequence(), customer, req.InitialDeposit)
	default:
		return nil, fmt.Errorf("unknown account type %d", req.AccountType)
	}

	if err := s.accounts.Add(account); err != nil {
		return nil, fmt.Errorf("register account: %w", err)
	}

	s.ledger.Record(account.Number(), domain.TypeDeposit, req.InitialDeposit, account.Balance(), "")
	return account, nil
}
