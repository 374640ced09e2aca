package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of ledger entry types. The persisted
// labels ("Deposit", "Transfer In", ...) exist only at the serialization
// boundary; inside the core the type is a tagged value, so typos and
// case-sensitivity bugs cannot occur.
type TransactionType int

const (
	TypeDeposit TransactionType = iota
	TypeWithdrawal
	TypeTransferIn
	TypeTransferOut
)

func (t TransactionType) String() string {
	switch t {
	case TypeDeposit:
		return "Deposit"
	case TypeWithdrawal:
		return "Withdrawal"
	case TypeTransferIn:
		return "Transfer In"
	case TypeTransferOut:
		return "Transfer Out"
	default:
		return fmt.Sprintf("TransactionType(%d)", int(t))
	}
}

// ParseTransactionType maps a persisted label back to its type,
// case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return TypeDeposit, nil
	case "withdrawal":
		return TypeWithdrawal, nil
	case "transfer in":
		return TypeTransferIn, nil
	case "transfer out":
		return TypeTransferOut, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", s)
	}
}

// Credits reports whether entries of this type increase the balance.
func (t TransactionType) Credits() bool {
	return t == TypeDeposit || t == TypeTransferIn
}

// TimestampLayout is the persisted date/time format, e.g. "27-08-2026 03:15 PM".
const TimestampLayout = "02-01-2006 03:04 PM"

// Transaction is one immutable, balance-affecting ledger entry. Entries are
// append-only: once recorded they are never updated or deleted.
//
// TransferID correlates the two halves of a transfer (Transfer Out on the
// source, Transfer In on the destination); it is empty for plain deposits
// and withdrawals, and is not part of the flat-file schema.
type Transaction struct {
	ID            string
	AccountNumber string
	Type          TransactionType
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	TransferID    string
	Timestamp     time.Time
}

// FormattedTimestamp renders the creation time in the persisted layout.
func (t Transaction) FormattedTimestamp() string {
	return t.Timestamp.Format(TimestampLayout)
}
