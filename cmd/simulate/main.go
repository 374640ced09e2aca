// Command simulate runs the concurrent transaction scenario: a checking
// account is opened, a batch of deposits is applied concurrently, then a
// batch of withdrawals, and the final balance is verified against the
// expected value.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vanshika/bankcore/internal/config"
	"github.com/vanshika/bankcore/internal/domain"
	"github.com/vanshika/bankcore/internal/logging"
	"github.com/vanshika/bankcore/internal/service"
)

func main() {
	var (
		initial     = flag.String("initial", "2000", "initial deposit for the simulated checking account")
		deposits    = flag.String("deposits", "200,100", "comma-separated deposit amounts")
		withdrawals = flag.String("withdrawals", "10000", "comma-separated withdrawal amounts")
		statement   = flag.Bool("statement", true, "print the account statement after the run")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "simulate")

	accounts := service.NewAccountManager()
	ledger := service.NewLedger()
	opening := service.NewAccountOpening(accounts, ledger)

	initialDeposit, err := domain.Money(*initial)
	if err != nil {
		logger.Error("invalid initial amount", "value", *initial, "error", err)
		os.Exit(1)
	}

	account, err := opening.Open(service.OpenAccountRequest{
		AccountType:    domain.CheckingAccount,
		CustomerType:   domain.RegularCustomer,
		Name:           "Simulation Customer",
		Age:            35,
		Contact:        "+1-555-0100",
		Address:        "1 Demo Street",
		InitialDeposit: initialDeposit,
	})
	if err != nil {
		logger.Error("failed to open account", "error", err)
		os.Exit(1)
	}
	logger.Info("account opened",
		"number", account.Number(),
		"balance", account.Balance().String(),
		"overdraft", account.OverdraftLimit().String())

	ops, err := buildOperations(*deposits, *withdrawals)
	if err != nil {
		logger.Error("invalid operation list", "error", err)
		os.Exit(1)
	}

	simulator := service.NewSimulator(accounts, ledger, logger).
		WithJoinTimeout(cfg.Simulator.JoinTimeout)

	result, err := simulator.Run(context.Background(), account.Number(), ops)
	if err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}

	for _, outcome := range result.Outcomes {
		if outcome.Err != nil {
			logger.Warn("operation rejected",
				"type", outcome.Operation.Type.String(),
				"amount", outcome.Operation.Amount.String(),
				"reason", outcome.Err.Error())
		}
	}

	if *statement {
		fmt.Print(service.NewStatementGenerator(ledger).Generate(account))
	}

	fmt.Printf("Initial: %s  Final: %s  Expected: %s  Verification: %s\n",
		domain.FormatAmount(result.InitialBalance),
		domain.FormatAmount(result.FinalBalance),
		domain.FormatAmount(result.ExpectedBalance),
		result.Status())

	if result.Status() != "PASSED" {
		os.Exit(1)
	}
}

func buildOperations(deposits, withdrawals string) ([]domain.Operation, error) {
	var ops []domain.Operation
	add := func(list string, typ domain.TransactionType) error {
		for _, amt := range splitAmounts(list) {
			d, err := domain.Money(amt)
			if err != nil {
				return fmt.Errorf("parse amount %q: %w", amt, err)
			}
			ops = append(ops, domain.Operation{Type: typ, Amount: d})
		}
		return nil
	}
	if err := add(deposits, domain.TypeDeposit); err != nil {
		return nil, err
	}
	if err := add(withdrawals, domain.TypeWithdrawal); err != nil {
		return nil, err
	}
	return ops, nil
}

func splitAmounts(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
