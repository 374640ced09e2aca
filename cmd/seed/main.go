// Command seed generates deterministic sample customers, accounts and
// ledger activity and writes them to the pipe-delimited flat files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/bankcore/internal/config"
	"github.com/vanshika/bankcore/internal/generator"
	"github.com/vanshika/bankcore/internal/logging"
	"github.com/vanshika/bankcore/internal/store"
)

func main() {
	defaults := generator.DefaultConfig()
	var (
		customers  = flag.Int("customers", defaults.NumCustomers, "number of customers to generate")
		operations = flag.Int("operations", defaults.NumOperations, "number of random ledger operations")
		premium    = flag.Float64("premium-chance", defaults.PremiumChance, "probability of a premium customer")
		seed       = flag.Int64("seed", defaults.Seed, "random seed for deterministic generation")
		outputDir  = flag.String("output-dir", "", "directory for accounts.txt and transactions.txt (default: DATA_DIR)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging).With("component", "seed")

	dir := cfg.Data.Dir
	if *outputDir != "" {
		dir = *outputDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gen := generator.New(generator.Config{
		NumCustomers:  *customers,
		NumOperations: *operations,
		PremiumChance: *premium,
		Seed:          *seed,
	})
	dataset, err := gen.Generate(ctx)
	if err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}

	files := store.NewFileStore(dir, logger)
	if err := files.SaveAccounts(dataset.Accounts); err != nil {
		logger.Error("failed to write accounts", "error", err)
		os.Exit(1)
	}
	if err := files.SaveTransactions(dataset.Transactions); err != nil {
		logger.Error("failed to write transactions", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d accounts and %d transactions into %s\n",
		len(dataset.Accounts), len(dataset.Transactions), dir)
}
