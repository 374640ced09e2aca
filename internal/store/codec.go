// Package store persists accounts and transactions in the pipe-delimited
// flat-file layout consumed by external tooling:
//
//	AccountType|AccountNumber|CustomerType|Name|Age|Contact|Address|Balance|VariantData
//	TransactionID|AccountNumber|Type|Amount|BalanceAfter|DateTime
//
// VariantData is "interestRate,minimumBalance" for savings accounts and
// "overdraftLimit" for checking accounts. The schema has no customer id
// column, so restored customers receive fresh ids; it also has no transfer
// correlation column, so round-tripped transfer halves come back
// uncorrelated.
package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vanshika/bankcore/internal/domain"
)

const (
	accountFieldCount     = 9
	transactionFieldCount = 6
)

// EncodeAccount serializes one account record line.
func EncodeAccount(a *domain.Account) string {
	customer := a.Customer()
	fields := []string{
		a.Type().String(),
		a.Number(),
		customer.Type().String(),
		customer.Name(),
		strconv.Itoa(customer.Age()),
		customer.Contact(),
		customer.Address(),
		a.Balance().String(),
	}
	switch a.Type() {
	case domain.SavingsAccount:
		fields = append(fields, a.InterestRate().String()+","+a.MinimumBalance().String())
	case domain.CheckingAccount:
		fields = append(fields, a.OverdraftLimit().String())
	}
	return strings.Join(fields, "|")
}

// ParseAccount rebuilds an account from one record line. Restored
// customers draw fresh ids from customerSeq since the schema does not
// carry customer identifiers.
func ParseAccount(line string, customerSeq *domain.Sequence) (*domain.Account, error) {
	parts := strings.Split(line, "|")
	if len(parts) != accountFieldCount {
		return nil, fmt.Errorf("account record has %d fields, want %d", len(parts), accountFieldCount)
	}

	accountType, err := domain.ParseAccountType(parts[0])
	if err != nil {
		return nil, err
	}
	customerType, err := domain.ParseCustomerType(parts[2])
	if err != nil {
		return nil, err
	}
	age, err := strconv.Atoi(parts[4])
	if err != nil {
		return nil, fmt.Errorf("parse customer age: %w", err)
	}
	balance, err := domain.Money(parts[7])
	if err != nil {
		return nil, fmt.Errorf("parse balance: %w", err)
	}

	customer := domain.NewCustomer(customerSeq, customerType, parts[3], age, parts[5], parts[6])
	number := parts[1]

	switch accountType {
	case domain.SavingsAccount:
		rateStr, minStr, ok := strings.Cut(parts[8], ",")
		if !ok {
			return nil, fmt.Errorf("savings variant data %q: want interestRate,minimumBalance", parts[8])
		}
		rate, err := domain.Money(rateStr)
		if err != nil {
			return nil, fmt.Errorf("parse interest rate: %w", err)
		}
		minBalance, err := domain.Money(minStr)
		if err != nil {
			return nil, fmt.Errorf("parse minimum balance: %w", err)
		}
		return domain.RestoreSavingsAccount(number, customer, balance, rate, minBalance), nil
	default:
		overdraft, err := domain.Money(parts[8])
		if err != nil {
			return nil, fmt.Errorf("parse overdraft limit: %w", err)
		}
		return domain.RestoreCheckingAccount(number, customer, balance, overdraft), nil
	}
}

// EncodeTransaction serializes one ledger entry line.
func EncodeTransaction(tx domain.Transaction) string {
	return strings.Join([]string{
		tx.ID,
		tx.AccountNumber,
		tx.Type.String(),
		tx.Amount.String(),
		tx.BalanceAfter.String(),
		tx.FormattedTimestamp(),
	}, "|")
}

// ParseTransaction rebuilds a ledger entry from one record line.
func ParseTransaction(line string) (domain.Transaction, error) {
	parts := strings.Split(line, "|")
	if len(parts) != transactionFieldCount {
		return domain.Transaction{}, fmt.Errorf("transaction record has %d fields, want %d", len(parts), transactionFieldCount)
	}

	typ, err := domain.ParseTransactionType(parts[2])
	if err != nil {
		return domain.Transaction{}, err
	}
	amount, err := domain.Money(parts[3])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse amount: %w", err)
	}
	balanceAfter, err := domain.Money(parts[4])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse balance after: %w", err)
	}
	ts, err := time.Parse(domain.TimestampLayout, parts[5])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse timestamp: %w", err)
	}

	return domain.Transaction{
		ID:            parts[0],
		AccountNumber: parts[1],
		Type:          typ,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
		Timestamp:     ts,
	}, nil
}
