// Package generator produces deterministic sample customers, accounts and
// ledger activity for demos and for exercising the persistence layer. All
// activity flows through the real services, so the generated ledger always
// satisfies the account invariants.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vanshika/bankcore/internal/domain"
	"github.com/vanshika/bankcore/internal/service"
)

// Dataset is a snapshot of the generated registries.
type Dataset struct {
	Accounts     []*domain.Account
	Transactions []domain.Transaction
}

// Generator synthesises bank activity from a seeded random source.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

var (
	firstNames = []string{"Alice", "Bob", "Carmen", "Dmitri", "Elena", "Farid", "Grace", "Hector"}
	lastNames  = []string{"Johnson", "Lee", "Martinez", "Nakamura", "O'Brien", "Patel", "Reyes", "Singh"}
	streets    = []string{"Maple Ave", "Oak St", "Pine Rd", "Cedar Ln", "Birch Blvd"}
)

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	defaults := DefaultConfig()
	if cfg.NumCustomers <= 0 {
		cfg.NumCustomers = defaults.NumCustomers
	}
	if cfg.NumOperations <= 0 {
		cfg.NumOperations = defaults.NumOperations
	}
	if cfg.PremiumChance <= 0 {
		cfg.PremiumChance = defaults.PremiumChance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Generator{cfg: cfg, rand: rand.New(rand.NewSource(cfg.Seed))}
}

// Generate opens one or two accounts per customer and runs a random mix of
// deposits, withdrawals and transfers against them. Operations rejected by
// the account policy (e.g. a withdrawal through the floor) are simply
// skipped. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	accounts := service.NewAccountManager()
	ledger := service.NewLedger()
	opening := service.NewAccountOpening(accounts, ledger)
	transfers := service.NewTransferService(accounts, ledger)

	var numbers []string
	for i := 0; i < g.cfg.NumCustomers; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		customerType := domain.RegularCustomer
		if g.rand.Float64() < g.cfg.PremiumChance {
			customerType = domain.PremiumCustomer
		}

		for _, accountType := range g.accountTypes() {
			req := service.OpenAccountRequest{
				AccountType:    accountType,
				CustomerType:   customerType,
				Name:           g.randomName(),
				Age:            18 + g.rand.Intn(60),
				Contact:        g.randomContact(),
				Address:        g.randomAddress(),
				InitialDeposit: g.randomAmount(1000, 20000),
			}
			account, err := opening.Open(req)
			if err != nil {
				return Dataset{}, fmt.Errorf("open sample account: %w", err)
			}
			numbers = append(numbers, account.Number())
		}
	}

	for i := 0; i < g.cfg.NumOperations; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		g.randomOperation(accounts, ledger, transfers, numbers)
	}

	return Dataset{
		Accounts:     accounts.All(),
		Transactions: ledger.All(),
	}, nil
}

func (g *Generator) randomOperation(accounts *service.AccountManager, ledger *service.Ledger, transfers *service.TransferService, numbers []string) {
	number := numbers[g.rand.Intn(len(numbers))]
	account, err := accounts.Find(number)
	if err != nil {
		return
	}

	switch g.rand.Intn(3) {
	case 0:
		amount := g.randomAmount(10, 2000)
		if after, err := account.Deposit(amount); err == nil {
			ledger.Record(number, domain.TypeDeposit, amount, after, "")
		}
	case 1:
		amount := g.randomAmount(10, 1500)
		if after, err := account.Withdraw(amount); err == nil {
			ledger.Record(number, domain.TypeWithdrawal, amount, after, "")
		}
	default:
		to := numbers[g.rand.Intn(len(numbers))]
		// Self-transfers and floor violations are rejected by the
		// services; generation just moves on.
		_, _ = transfers.Transfer(number, to, g.randomAmount(10, 1000))
	}
}

func (g *Generator) accountTypes() []domain.AccountType {
	if g.rand.Intn(2) == 0 {
		return []domain.AccountType{domain.SavingsAccount}
	}
	return []domain.AccountType{domain.SavingsAccount, domain.CheckingAccount}
}

func (g *Generator) randomName() string {
	return firstNames[g.rand.Intn(len(firstNames))] + " " + lastNames[g.rand.Intn(len(lastNames))]
}

func (g *Generator) randomContact() string {
	return fmt.Sprintf("+1-555-%04d", g.rand.Intn(10000))
}

func (g *Generator) randomAddress() string {
	return fmt.Sprintf("%d %s", 1+g.rand.Intn(999), streets[g.rand.Intn(len(streets))])
}

// randomAmount returns a whole-cent amount in [min, max).
func (g *Generator) randomAmount(min, max int64) decimal.Decimal {
	cents := min*100 + g.rand.Int63n((max-min)*100)
	return decimal.New(cents, -2)
}
