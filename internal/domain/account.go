package domain

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// AccountType distinguishes the two account variants. The variants differ
// only in their withdrawal floor and display-only attributes, so they are
// modelled as data on a single Account type rather than as subtypes.
type AccountType int

const (
	SavingsAccount AccountType = iota
	CheckingAccount
)

func (t AccountType) String() string {
	if t == CheckingAccount {
		return "Checking"
	}
	return "Savings"
}

// ParseAccountType maps the persisted label back to an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch s {
	case "Savings":
		return SavingsAccount, nil
	case "Checking":
		return CheckingAccount, nil
	default:
		return 0, fmt.Errorf("unknown account type %q", s)
	}
}

// Default variant parameters applied when opening new accounts.
var (
	DefaultInterestRate   = decimal.RequireFromString("3.5")
	DefaultMinimumBalance = decimal.NewFromInt(500)
	DefaultOverdraftLimit = decimal.NewFromInt(1000)
	DefaultMonthlyFee     = decimal.NewFromInt(10)
)

// Operation names one balance-affecting action for Account.Apply. Only
// TypeDeposit and TypeWithdrawal may be applied directly; transfer entries
// are composed by the transfer service.
type Operation struct {
	Type   TransactionType
	Amount decimal.Decimal
}

// Account owns a mutable balance and enforces the variant's withdrawal
// policy. Every mutation goes through the account's own mutex, and Apply
// exposes an atomic mutate-and-record step so balance snapshots written to
// the ledger can never be stale.
//
// The status field exists for display only; no transition away from
// "Active" is implemented.
type Account struct {
	mu       sync.Mutex
	number   string
	customer *Customer
	typ      AccountType
	balance  decimal.Decimal
	status   string

	// Savings: interestRate is display-only, minimumBalance is the floor.
	interestRate   decimal.Decimal
	minimumBalance decimal.Decimal

	// Checking: overdraftLimit bounds the floor at -overdraftLimit,
	// monthlyFee is display-only and never applied automatically.
	overdraftLimit decimal.Decimal
	monthlyFee     decimal.Decimal
}

// NewSavingsAccount opens a savings account with the default interest rate
// and minimum balance. The initial deposit becomes the starting balance.
func NewSavingsAccount(seq *Sequence, customer *Customer, initialDeposit decimal.Decimal) *Account {
	return &Account{
		number:         seq.Next(),
		customer:       customer,
		typ:            SavingsAccount,
		balance:        initialDeposit,
		status:         "Active",
		interestRate:   DefaultInterestRate,
		minimumBalance: DefaultMinimumBalance,
	}
}

// NewCheckingAccount opens a checking account with the default overdraft
// limit and monthly fee. The initial deposit becomes the starting balance.
func NewCheckingAccount(seq *Sequence, customer *Customer, initialDeposit decimal.Decimal) *Account {
	return &Account{
		number:         seq.Next(),
		customer:       customer,
		typ:            CheckingAccount,
		balance:        initialDeposit,
		status:         "Active",
		overdraftLimit: DefaultOverdraftLimit,
		monthlyFee:     DefaultMonthlyFee,
	}
}

// RestoreSavingsAccount rebuilds a savings account from persisted fields,
// keeping its original number and variant parameters. This is the load
// path; it never allocates a new identifier.
func RestoreSavingsAccount(number string, customer *Customer, balance, interestRate, minimumBalance decimal.Decimal) *Account {
	return &Account{
		number:         number,
		customer:       customer,
		typ:            SavingsAccount,
		balance:        balance,
		status:         "Active",
		interestRate:   interestRate,
		minimumBalance: minimumBalance,
	}
}

// RestoreCheckingAccount rebuilds a checking account from persisted fields.
func RestoreCheckingAccount(number string, customer *Customer, balance, overdraftLimit decimal.Decimal) *Account {
	return &Account{
		number:         number,
		customer:       customer,
		typ:            CheckingAccount,
		balance:        balance,
		status:         "Active",
		overdraftLimit: overdraftLimit,
		monthlyFee:     DefaultMonthlyFee,
	}
}

func (a *Account) Number() string      { return a.number }
func (a *Account) Customer() *Customer { return a.customer }
func (a *Account) Type() AccountType   { return a.typ }
func (a *Account) Status() string      { return a.status }

// Display-only variant attributes.
func (a *Account) InterestRate() decimal.Decimal   { return a.interestRate }
func (a *Account) MinimumBalance() decimal.Decimal { return a.minimumBalance }
func (a *Account) OverdraftLimit() decimal.Decimal { return a.overdraftLimit }
func (a *Account) MonthlyFee() decimal.Decimal     { return a.monthlyFee }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Floor is the balance the account may not drop below: the minimum balance
// for savings, the negated overdraft limit for checking.
func (a *Account) Floor() decimal.Decimal {
	if a.typ == CheckingAccount {
		return a.overdraftLimit.Neg()
	}
	return a.minimumBalance
}

// CanWithdraw reports whether a withdrawal of amount would stay at or above
// the floor. It never mutates state and never raises.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance.Sub(amount).GreaterThanOrEqual(a.Floor())
}

// Deposit adds amount to the balance and returns the new balance. Amounts
// must be positive; deposits never consult the floor. The caller records
// the ledger entry.
func (a *Account) Deposit(amount decimal.Decimal) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.depositLocked(amount)
}

// Withdraw subtracts amount from the balance and returns the new balance.
// On a floor violation it fails with InsufficientFunds and leaves the
// balance untouched.
func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawLocked(amount)
}

// Apply dispatches op to deposit or withdraw and, on success, invokes
// record with the post-operation balance while the account lock is still
// held. Read balance, mutate, snapshot, record is therefore one atomic
// unit; concurrent callers cannot interleave inside it.
func (a *Account) Apply(op Operation, record func(balanceAfter decimal.Decimal)) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var (
		after decimal.Decimal
		err   error
	)
	switch op.Type {
	case TypeDeposit:
		after, err = a.depositLocked(op.Amount)
	case TypeWithdrawal:
		after, err = a.withdrawLocked(op.Amount)
	default:
		return decimal.Decimal{}, NewInvalidAmount(fmt.Sprintf("operation type %q cannot be applied directly", op.Type))
	}
	if err != nil {
		return decimal.Decimal{}, err
	}
	if record != nil {
		record(after)
	}
	return after, nil
}

func (a *Account) depositLocked(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return decimal.Decimal{}, NewInvalidAmount("deposit amount must be greater than 0")
	}
	a.balance = a.balance.Add(amount)
	return a.balance, nil
}

func (a *Account) withdrawLocked(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return decimal.Decimal{}, NewInvalidAmount("withdrawal amount must be greater than 0")
	}
	if a.balance.Sub(amount).LessThan(a.Floor()) {
		return decimal.Decimal{}, NewInsufficientFunds(a.balance)
	}
	a.balance = a.balance.Sub(amount)
	return a.balance, nil
}
