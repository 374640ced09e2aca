package domain

import (
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestCustomer() *Customer {
	return NewCustomer(NewSequence("CUST"), RegularCustomer, "Test Customer", 30, "+1-555-0000", "Test Address")
}

func TestDepositIncreasesBalance(t *testing.T) {
	account := NewSavingsAccount(NewSequence("ACC"), newTestCustomer(), MustMoney("1000"))

	after, err := account.Deposit(MustMoney("250.50"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if want := MustMoney("1250.50"); !after.Equal(want) {
		t.Errorf("expected balance %s, got %s", want, after)
	}
	if !account.Balance().Equal(after) {
		t.Errorf("returned balance %s does not match stored balance %s", after, account.Balance())
	}
}

func TestDepositRejectsNonPositiveAmounts(t *testing.T) {
	account := NewSavingsAccount(NewSequence("ACC"), newTestCustomer(), MustMoney("1000"))

	for _, amount := range []string{"0", "-50"} {
		if _, err := account.Deposit(MustMoney(amount)); !IsKind(err, KindInvalidAmount) {
			t.Errorf("deposit of %s: expected InvalidAmount, got %v", amount, err)
		}
	}
	if !account.Balance().Equal(MustMoney("1000")) {
		t.Errorf("balance changed after rejected deposits: %s", account.Balance())
	}
}

func TestSavingsWithdrawalRespectsMinimumBalance(t *testing.T) {
	account := NewSavingsAccount(NewSequence("ACC"), newTestCustomer(), MustMoney("1000"))

	// 1000 - 500 == the 500 minimum balance, exactly at the floor.
	after, err := account.Withdraw(MustMoney("500"))
	if err != nil {
		t.Fatalf("expected withdrawal at the floor to succeed, got %v", err)
	}
	if !after.Equal(MustMoney("500")) {
		t.Errorf("expected balance 500, got %s", after)
	}

	if _, err := account.Withdraw(MustMoney("0.01")); !IsKind(err, KindInsufficientFunds) {
		t.Fatalf("expected InsufficientFunds below the floor, got %v", err)
	}
	if !account.Balance().Equal(MustMoney("500")) {
		t.Errorf("balance changed after failed withdrawal: %s", account.Balance())
	}
}

func TestCheckingWithdrawalUsesOverdraft(t *testing.T) {
	account := NewCheckingAccount(NewSequence("ACC"), newTestCustomer(), MustMoney("500"))

	// 500 - 1500 == -1000, exactly at the overdraft floor.
	after, err := account.Withdraw(MustMoney("1500"))
	if err != nil {
		t.Fatalf("expected withdrawal into overdraft to succeed, got %v", err)
	}
	if !after.Equal(MustMoney("-1000")) {
		t.Errorf("expected balance -1000, got %s", after)
	}

	if _, err := account.Withdraw(MustMoney("1")); !IsKind(err, KindInsufficientFunds) {
		t.Fatalf("expected InsufficientFunds beyond overdraft, got %v", err)
	}
}

func TestInsufficientFundsReasonStatesBalance(t *testing.T) {
	account := NewSavingsAccount(NewSequence("ACC"), newTestCustomer(), MustMoney("600"))

	_, err := account.Withdraw(MustMoney("200"))
	if err == nil {
		t.Fatal("expected withdrawal below minimum balance to fail")
	}
	if want := FormatAmount(MustMoney("600")); !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should state the current balance %s", err.Error(), want)
	}
}

func TestCanWithdrawIsPure(t *testing.T) {
	account := NewCheckingAccount(NewSequence("ACC"), newTestCustomer(), MustMoney("100"))

	if !account.CanWithdraw(MustMoney("1100")) {
		t.Error("expected withdrawal within overdraft to be allowed")
	}
	if account.CanWithdraw(MustMoney("1100.01")) {
		t.Error("expected withdrawal past overdraft to be disallowed")
	}
	if !account.Balance().Equal(MustMoney("100")) {
		t.Errorf("CanWithdraw mutated the balance: %s", account.Balance())
	}
}

func TestWithdrawRejectsNonPositiveAmounts(t *testing.T) {
	account := NewSavingsAccount(NewSequence("ACC"), newTestCustomer(), MustMoney("1000"))

	if _, err := account.Withdraw(MustMoney("0")); !IsKind(err, KindInvalidAmount) {
		t.Errorf("expected InvalidAmount for zero withdrawal, got %v", err)
	}
	if _, err := account.Withdraw(MustMoney("-10")); !IsKind(err, KindInvalidAmount) {
		t.Errorf("expected InvalidAmount for negative withdrawal, got %v", err)
	}
}

func TestApplyRecordsSnapshotAtomically(t *testing.T) {
	account := NewCheckingAccount(NewSequence("ACC"), newTestCustomer(), MustMoney("0"))

	const workers = 50
	var (
		mu        sync.Mutex
		snapshots []decimal.Decimal
		wg        sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := account.Apply(Operation{Type: TypeDeposit, Amount: MustMoney("1")}, func(after decimal.Decimal) {
				mu.Lock()
				snapshots = append(snapshots, after)
				mu.Unlock()
			})
			if err != nil {
				t.Errorf("expected deposit to succeed, got %v", err)
			}
		}()
	}
	wg.Wait()

	if !account.Balance().Equal(MustMoney("50")) {
		t.Fatalf("expected final balance 50, got %s", account.Balance())
	}

	// Each snapshot was taken inside the critical section, so the set of
	// recorded balances must be exactly 1..50 with no duplicates.
	seen := make(map[string]bool, workers)
	for _, s := range snapshots {
		seen[s.String()] = true
	}
	if len(seen) != workers {
		t.Errorf("expected %d distinct balance snapshots, got %d", workers, len(seen))
	}
}

func TestApplyRejectsTransferTypes(t *testing.T) {
	account := NewSavingsAccount(NewSequence("ACC"), newTestCustomer(), MustMoney("1000"))

	_, err := account.Apply(Operation{Type: TypeTransferOut, Amount: MustMoney("10")}, nil)
	if !IsKind(err, KindInvalidAmount) {
		t.Errorf("expected InvalidAmount for transfer op, got %v", err)
	}
}

func TestRestoreAccountsKeepPersistedFields(t *testing.T) {
	customer := newTestCustomer()

	savings := RestoreSavingsAccount("ACC042", customer, MustMoney("750.25"), MustMoney("4.2"), MustMoney("300"))
	if savings.Number() != "ACC042" {
		t.Errorf("expected restored number ACC042, got %s", savings.Number())
	}
	if !savings.MinimumBalance().Equal(MustMoney("300")) {
		t.Errorf("expected restored minimum balance 300, got %s", savings.MinimumBalance())
	}
	if !savings.Floor().Equal(MustMoney("300")) {
		t.Errorf("expected floor 300, got %s", savings.Floor())
	}

	checking := RestoreCheckingAccount("ACC043", customer, MustMoney("-200"), MustMoney("500"))
	if !checking.Floor().Equal(MustMoney("-500")) {
		t.Errorf("expected floor -500, got %s", checking.Floor())
	}
	if checking.Status() != "Active" {
		t.Errorf("expected status Active, got %s", checking.Status())
	}
}
