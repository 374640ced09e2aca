// Command archive replays the flat-file ledger into the optional Postgres
// archive and Neo4j graph mirror, fanning the work out over a worker pool.
// At least one of ARCHIVE_DSN and GRAPH_URI must be configured.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vanshika/bankcore/internal/archive"
	"github.com/vanshika/bankcore/internal/config"
	"github.com/vanshika/bankcore/internal/domain"
	"github.com/vanshika/bankcore/internal/graph"
	"github.com/vanshika/bankcore/internal/logging"
	"github.com/vanshika/bankcore/internal/service"
	"github.com/vanshika/bankcore/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging).With("component", "archive")

	if cfg.Archive.DSN == "" && cfg.Graph.URI == "" {
		logger.Error("nothing to do: set ARCHIVE_DSN and/or GRAPH_URI")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	files := store.NewFileStore(cfg.Data.Dir, logger)
	customerSeq := domain.NewSequence("CUST")

	accounts, err := files.LoadAccounts(customerSeq)
	if err != nil {
		logger.Error("failed to load accounts", "error", err)
		os.Exit(1)
	}
	txs, err := files.LoadTransactions()
	if err != nil {
		logger.Error("failed to load transactions", "error", err)
		os.Exit(1)
	}
	logger.Info("ledger loaded", "accounts", len(accounts), "transactions", len(txs))

	var pg *archive.Store
	if cfg.Archive.DSN != "" {
		pg, err = archive.Open(ctx, cfg.Archive.DSN)
		if err != nil {
			logger.Error("failed to open archive", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		if err := pg.Init(ctx); err != nil {
			logger.Error("failed to init archive schema", "error", err)
			os.Exit(1)
		}
	}

	var mirror *graph.Mirror
	if cfg.Graph.URI != "" {
		client, err := graph.NewNeo4jClient(ctx, graph.Options{
			URI:            cfg.Graph.URI,
			Database:       cfg.Graph.Database,
			Username:       cfg.Graph.Username,
			Password:       cfg.Graph.Password,
			MaxConnections: cfg.Graph.MaxConnections,
		})
		if err != nil {
			logger.Error("failed to create graph client", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := client.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}()
		mirror = graph.NewMirror(client, logger)

		if err := replayAccounts(ctx, cfg.Archive.Workers, mirror, accounts); err != nil {
			logger.Warn("account mirroring finished with errors", "error", err)
		}
	}

	ingestor := service.NewIngestor(cfg.Archive.Workers)
	err = ingestor.Run(ctx, len(txs), func(idx int) error {
		tx := txs[idx]
		if pg != nil {
			if err := pg.ArchiveTransaction(ctx, tx); err != nil {
				return err
			}
		}
		if mirror != nil {
			if err := mirror.UpsertTransaction(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var batchErr *service.BatchError
		if errors.As(err, &batchErr) {
			logger.Warn("replay finished with errors", "failed", len(batchErr.Errors), "total", len(txs))
		} else {
			logger.Error("replay failed", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("replay complete", "transactions", len(txs))
	}
}

func replayAccounts(ctx context.Context, workers int, mirror *graph.Mirror, accounts []*domain.Account) error {
	ingestor := service.NewIngestor(workers)
	return ingestor.Run(ctx, len(accounts), func(idx int) error {
		return mirror.UpsertAccount(ctx, accounts[idx])
	})
}
