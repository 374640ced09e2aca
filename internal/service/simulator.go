package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vanshika/bankcore/internal/domain"
)

const defaultJoinTimeout = 5 * time.Second

// OperationOutcome is the per-operation result of a simulation run.
// Completed distinguishes operations that finished (successfully or not)
// from stragglers abandoned at a phase timeout.
type OperationOutcome struct {
	Operation    domain.Operation
	BalanceAfter decimal.Decimal
	Err          error
	Completed    bool
}

// SimulationResult is the best-effort outcome of one simulation batch.
// ExpectedBalance is the initial balance plus all succeeded deposits minus
// all succeeded withdrawals; Verified reports whether the account's actual
// final balance matches it. A non-zero Failed count or a failed
// verification is a diagnostic signal for the caller, not an error.
type SimulationResult struct {
	AccountNumber   string
	InitialBalance  decimal.Decimal
	FinalBalance    decimal.Decimal
	ExpectedBalance decimal.Decimal
	Outcomes        []OperationOutcome
	Failed          int
	Unfinished      int
	Verified        bool
}

// Status summarises the balance verification as PASSED or FAILED.
func (r SimulationResult) Status() string {
	if r.Verified && r.Unfinished == 0 {
		return "PASSED"
	}
	return "FAILED"
}

// Simulator applies a batch of deposit and withdrawal operations against
// one account using concurrent workers.
//
// Operations run in two phases: every deposit commits (balance mutation and
// ledger entry) before any withdrawal starts, because the simulated
// scenarios rely on deposits funding later withdrawals. Within a phase no
// ordering is guaranteed; each operation holds the account's critical
// section across its whole mutate-and-record step, so recorded balance
// snapshots are exact. Per-operation failures are logged and collected,
// never raised.
type Simulator struct {
	accounts    *AccountManager
	ledger      *Ledger
	logger      *slog.Logger
	joinTimeout time.Duration
}

// NewSimulator builds a simulator over the given registries. A nil logger
// falls back to slog.Default.
func NewSimulator(accounts *AccountManager, ledger *Ledger, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{
		accounts:    accounts,
		ledger:      ledger,
		logger:      logger.With("component", "simulator"),
		joinTimeout: defaultJoinTimeout,
	}
}

// WithJoinTimeout overrides the per-phase wait budget.
func (s *Simulator) WithJoinTimeout(d time.Duration) *Simulator {
	if d > 0 {
		s.joinTimeout = d
	}
	return s
}

// Run executes ops against the named account and returns the best-effort
// result. Only an unknown account is an error; everything that happens to
// individual operations is reported through the result.
func (s *Simulator) Run(ctx context.Context, accountNumber string, ops []domain.Operation) (SimulationResult, error) {
	account, err := s.accounts.Find(accountNumber)
	if err != nil {
		return SimulationResult{}, err
	}

	result := SimulationResult{
		AccountNumber:  accountNumber,
		InitialBalance: account.Balance(),
		Outcomes:       make([]OperationOutcome, len(ops)),
	}

	var deposits, withdrawals []int
	for i, op := range ops {
		switch op.Type {
		case domain.TypeDeposit:
			deposits = append(deposits, i)
		case domain.TypeWithdrawal:
			withdrawals = append(withdrawals, i)
		default:
			result.Outcomes[i] = OperationOutcome{
				Operation: op,
				Err:       domain.NewInvalidAmount("only deposits and withdrawals can be simulated"),
				Completed: true,
			}
		}
	}

	// Deposit phase is a barrier: withdrawals must observe every deposit.
	result.Unfinished += s.runPhase(ctx, account, ops, deposits, result.Outcomes)
	result.Unfinished += s.runPhase(ctx, account, ops, withdrawals, result.Outcomes)

	expected := result.InitialBalance
	for i := range result.Outcomes {
		outcome := &result.Outcomes[i]
		if !outcome.Completed {
			continue
		}
		if outcome.Err != nil {
			result.Failed++
			continue
		}
		switch outcome.Operation.Type {
		case domain.TypeDeposit:
			expected = expected.Add(outcome.Operation.Amount)
		case domain.TypeWithdrawal:
			expected = expected.Sub(outcome.Operation.Amount)
		}
	}

	result.FinalBalance = account.Balance()
	result.ExpectedBalance = expected
	result.Verified = result.FinalBalance.Equal(expected)

	s.logger.Info("balance verification",
		"account", accountNumber,
		"expected", result.ExpectedBalance.String(),
		"actual", result.FinalBalance.String(),
		"failed", result.Failed,
		"unfinished", result.Unfinished,
		"status", result.Status())

	return result, nil
}

// runPhase executes the operations at the given indices with one worker
// per operation, then waits for the phase to drain within the join budget.
// It returns the number of operations still running when the budget
// expired; those workers are left to finish in the background and their
// outcomes are untrustworthy.
func (s *Simulator) runPhase(ctx context.Context, account *domain.Account, ops []domain.Operation, indices []int, outcomes []OperationOutcome) int {
	if len(indices) == 0 {
		return 0
	}

	indexCh := make(chan int)
	done := make(chan struct{})
	var wg sync.WaitGroup
	var remaining atomic.Int64
	remaining.Store(int64(len(indices)))

	for range indices {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexCh {
				s.execute(account, ops[i], &outcomes[i])
				remaining.Add(-1)
			}
		}()
	}

	go func() {
		defer close(indexCh)
		for _, i := range indices {
			indexCh <- i
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return 0
	case <-ctx.Done():
	case <-time.After(s.joinTimeout):
	}

	left := int(remaining.Load())
	if left > 0 {
		s.logger.Warn("phase join incomplete", "unfinished", left)
	}
	return left
}

func (s *Simulator) execute(account *domain.Account, op domain.Operation, outcome *OperationOutcome) {
	outcome.Operation = op

	after, err := account.Apply(op, func(balanceAfter decimal.Decimal) {
		s.ledger.Record(account.Number(), op.Type, op.Amount, balanceAfter, "")
	})
	if err != nil {
		outcome.Err = err
		outcome.Completed = true
		s.logger.Warn("operation failed",
			"type", op.Type.String(),
			"amount", op.Amount.String(),
			"account", account.Number(),
			"error", err)
		return
	}

	outcome.BalanceAfter = after
	outcome.Completed = true
	s.logger.Debug("operation applied",
		"type", op.Type.String(),
		"amount", op.Amount.String(),
		"balance", after.String())
}
