package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/vanshika/bankcore/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSimulatorOverdrawnWithdrawalScenario(t *testing.T) {
	accounts := NewAccountManager()
	ledger := NewLedger()
	opening := NewAccountOpening(accounts, ledger)

	account := openTestAccount(t, opening, domain.CheckingAccount, "2000")

	ops := []domain.Operation{
		{Type: domain.TypeDeposit, Amount: domain.MustMoney("200")},
		{Type: domain.TypeDeposit, Amount: domain.MustMoney("100")},
		{Type: domain.TypeWithdrawal, Amount: domain.MustMoney("10000")},
	}

	sim := NewSimulator(accounts, ledger, discardLogger())
	result, err := sim.Run(context.Background(), account.Number(), ops)
	if err != nil {
		t.Fatalf("simulation failed: %v", err)
	}

	if !result.InitialBalance.Equal(domain.MustMoney("2000")) {
		t.Errorf("expected initial balance 2000, got %s", result.InitialBalance)
	}
	// 2000 + 200 + 100; the 10000 withdrawal breaches the -1000 floor.
	if !result.FinalBalance.Equal(domain.MustMoney("2300")) {
		t.Errorf("expected final balance 2300, got %s", result.FinalBalance)
	}
	if result.Failed != 1 {
		t.Errorf("expected exactly one failed operation, got %d", result.Failed)
	}
	if result.Unfinished != 0 {
		t.Errorf("expected no unfinished operations, got %d", result.Unfinished)
	}
	if !result.Verified {
		t.Error("expected the balance verification to succeed")
	}
	if result.Status() != "PASSED" {
		t.Errorf("expected status PASSED, got %s", result.Status())
	}

	var failed *OperationOutcome
	for i := range result.Outcomes {
		if result.Outcomes[i].Err != nil {
			failed = &result.Outcomes[i]
		}
	}
	if failed == nil {
		t.Fatal("expected a failed outcome in the result")
	}
	if !domain.IsKind(failed.Err, domain.KindInsufficientFunds) {
		t.Errorf("expected InsufficientFunds on the oversized withdrawal, got %v", failed.Err)
	}

	// Opening deposit plus the two successful simulated deposits.
	if got := ledger.CountByAccount(account.Number()); got != 3 {
		t.Errorf("expected 3 ledger entries, got %d", got)
	}
}

func TestSimulatorConcurrentDepositsLoseNoUpdates(t *testing.T) {
	accounts := NewAccountManager()
	ledger := NewLedger()
	opening := NewAccountOpening(accounts, ledger)
	account := openTestAccount(t, opening, domain.CheckingAccount, "100")

	const n = 60
	ops := make([]domain.Operation, n)
	for i := range ops {
		ops[i] = domain.Operation{Type: domain.TypeDeposit, Amount: domain.MustMoney("5")}
	}

	sim := NewSimulator(accounts, ledger, discardLogger())
	result, err := sim.Run(context.Background(), account.Number(), ops)
	if err != nil {
		t.Fatalf("simulation failed: %v", err)
	}

	if !result.FinalBalance.Equal(domain.MustMoney("400")) {
		t.Errorf("expected final balance 400, got %s", result.FinalBalance)
	}
	if result.Failed != 0 || result.Unfinished != 0 {
		t.Errorf("expected a clean run, got failed=%d unfinished=%d", result.Failed, result.Unfinished)
	}
	if result.Status() != "PASSED" {
		t.Errorf("expected PASSED, got %s", result.Status())
	}
	// Opening deposit plus one entry per simulated deposit, each with the
	// exact balance snapshot taken inside the account's critical section.
	if got := ledger.CountByAccount(account.Number()); got != n+1 {
		t.Errorf("expected %d ledger entries, got %d", n+1, got)
	}
	seen := make(map[string]bool)
	for _, tx := range ledger.ByAccount(account.Number()) {
		key := tx.BalanceAfter.String()
		if seen[key] {
			t.Fatalf("duplicate balance snapshot %s indicates a lost update", key)
		}
		seen[key] = true
	}
}

func TestSimulatorDepositsCommitBeforeWithdrawals(t *testing.T) {
	accounts := NewAccountManager()
	ledger := NewLedger()
	opening := NewAccountOpening(accounts, ledger)
	// Savings floor is 500: the 400 withdrawal only clears once both
	// deposits have landed (500+200+200-400 = 500, exactly at the floor).
	account := openTestAccount(t, opening, domain.SavingsAccount, "500")

	ops := []domain.Operation{
		{Type: domain.TypeWithdrawal, Amount: domain.MustMoney("400")},
		{Type: domain.TypeDeposit, Amount: domain.MustMoney("200")},
		{Type: domain.TypeDeposit, Amount: domain.MustMoney("200")},
	}

	sim := NewSimulator(accounts, ledger, discardLogger())
	result, err := sim.Run(context.Background(), account.Number(), ops)
	if err != nil {
		t.Fatalf("simulation failed: %v", err)
	}
	if result.Failed != 0 {
		t.Fatalf("expected the withdrawal to run after the deposits, got %d failures", result.Failed)
	}
	if !result.FinalBalance.Equal(domain.MustMoney("500")) {
		t.Errorf("expected final balance 500, got %s", result.FinalBalance)
	}
	if result.Status() != "PASSED" {
		t.Errorf("expected PASSED, got %s", result.Status())
	}
}

func TestSimulatorRejectsUnknownAccount(t *testing.T) {
	sim := NewSimulator(NewAccountManager(), NewLedger(), discardLogger())

	_, err := sim.Run(context.Background(), "ACC404", nil)
	if !domain.IsKind(err, domain.KindAccountNotFound) {
		t.Errorf("expected AccountNotFound, got %v", err)
	}
}

func TestSimulatorMarksTransferOpsFailed(t *testing.T) {
	accounts := NewAccountManager()
	ledger := NewLedger()
	opening := NewAccountOpening(accounts, ledger)
	account := openTestAccount(t, opening, domain.CheckingAccount, "100")

	ops := []domain.Operation{
		{Type: domain.TypeTransferOut, Amount: domain.MustMoney("10")},
	}
	sim := NewSimulator(accounts, ledger, discardLogger())
	result, err := sim.Run(context.Background(), account.Number(), ops)
	if err != nil {
		t.Fatalf("simulation failed: %v", err)
	}
	if result.Failed != 1 {
		t.Errorf("expected the transfer op to be rejected, got failed=%d", result.Failed)
	}
	if !result.Outcomes[0].Completed {
		t.Error("rejected operation must still be marked completed")
	}
	if result.Status() != "PASSED" {
		t.Errorf("expected PASSED with an unchanged balance, got %s", result.Status())
	}
}
