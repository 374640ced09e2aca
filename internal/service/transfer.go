package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vanshika/bankcore/internal/domain"
)

// TransferReceipt describes a completed transfer: the shared correlation
// id and the two ledger entries it produced.
type TransferReceipt struct {
	TransferID string
	Out        domain.Transaction
	In         domain.Transaction
}

// TransferService composes a withdraw and a deposit across two accounts
// into one logical operation.
type TransferService struct {
	accounts *AccountManager
	ledger   *Ledger
}

// NewTransferService wires the transfer orchestrator to its registries.
func NewTransferService(accounts *AccountManager, ledger *Ledger) *TransferService {
	return &TransferService{accounts: accounts, ledger: ledger}
}

// Transfer moves amount from one account to another and records a
// Transfer Out / Transfer In entry pair sharing one correlation id.
//
// The validation order is part of the contract: non-positive amount, then
// source lookup, then destination lookup, then self-transfer, then the
// source withdrawal. A failure at any step leaves both balances untouched
// and writes nothing to the ledger. There is no rollback path: the deposit
// runs only after the withdrawal has succeeded, and a deposit of an
// already-validated positive amount cannot fail.
func (s *TransferService) Transfer(fromNumber, toNumber string, amount decimal.Decimal) (TransferReceipt, error) {
	if amount.Sign() <= 0 {
		return TransferReceipt{}, domain.NewInvalidAmount("transfer amount must be greater than 0")
	}

	from, err := s.accounts.Find(fromNumber)
	if err != nil {
		return TransferReceipt{}, err
	}
	to, err := s.accounts.Find(toNumber)
	if err != nil {
		return TransferReceipt{}, err
	}

	if fromNumber == toNumber {
		return TransferReceipt{}, domain.NewInvalidAmount("cannot transfer to the same account")
	}

	fromAfter, err := from.Withdraw(amount)
	if err != nil {
		return TransferReceipt{}, err
	}

	toAfter, err := to.Deposit(amount)
	if err != nil {
		// Unreachable for a validated amount; surfaced rather than swallowed.
		return TransferReceipt{}, fmt.Errorf("deposit to %s after successful withdrawal: %w", toNumber, err)
	}

	transferID := uuid.NewString()
	out := s.ledger.Record(fromNumber, domain.TypeTransferOut, amount, fromAfter, transferID)
	in := s.ledger.Record(toNumber, domain.TypeTransferIn, amount, toAfter, transferID)

	return TransferReceipt{TransferID: transferID, Out: out, In: in}, nil
}
