package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorKind enumerates the closed set of domain failures. Every error the
// core raises belongs to exactly one kind; callers classify with IsKind
// rather than matching message text.
type ErrorKind int

const (
	// KindInvalidAmount covers non-positive amounts and same-account transfers.
	KindInvalidAmount ErrorKind = iota + 1
	// KindAccountNotFound covers lookups of unknown account numbers.
	KindAccountNotFound
	// KindInsufficientFunds covers withdrawals that would breach the
	// account's floor. The error reason always states the current balance.
	KindInsufficientFunds
	// KindStorageExhausted is retained for fixed-capacity legacy stores; the
	// growth-capable registries in this package never raise it.
	KindStorageExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidAmount:
		return "invalid amount"
	case KindAccountNotFound:
		return "account not found"
	case KindInsufficientFunds:
		return "insufficient funds"
	case KindStorageExhausted:
		return "storage exhausted"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// Error is the single domain error type. Validation failures are raised at
// the point of detection and never after state has been mutated.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// NewInvalidAmount builds an InvalidAmount error with the given reason.
func NewInvalidAmount(reason string) *Error {
	return &Error{Kind: KindInvalidAmount, Reason: reason}
}

// NewAccountNotFound builds an AccountNotFound error for the given number.
func NewAccountNotFound(number string) *Error {
	return &Error{
		Kind:   KindAccountNotFound,
		Reason: fmt.Sprintf("account %s not found", number),
	}
}

// NewInsufficientFunds builds an InsufficientFunds error carrying the
// account's current balance in its reason.
func NewInsufficientFunds(balance decimal.Decimal) *Error {
	return &Error{
		Kind:   KindInsufficientFunds,
		Reason: fmt.Sprintf("insufficient funds: current balance is %s", FormatAmount(balance)),
	}
}

// IsKind reports whether err is, or wraps, a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}
