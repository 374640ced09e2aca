package service

import (
	"context"
	"sync"
)

// BatchError accumulates the failures of a bulk run.
type BatchError struct {
	Errors []error
}

func (e *BatchError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *BatchError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *BatchError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Ingestor fans a per-item function out over a bounded worker pool. It is
// used to replay large ledgers into the archive and graph mirror without
// failing the whole batch on individual errors.
type Ingestor struct {
	workers int
}

// NewIngestor creates an Ingestor with the provided concurrency.
func NewIngestor(workers int) *Ingestor {
	if workers <= 0 {
		workers = 4
	}
	return &Ingestor{workers: workers}
}

// Run applies fn to every index in [0, total), using up to the configured
// number of workers, and returns a *BatchError aggregating any failures.
// A cancelled context stops feeding new items.
func (in *Ingestor) Run(ctx context.Context, total int, fn func(idx int) error) error {
	if total == 0 {
		return nil
	}

	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	workers := in.workers
	if workers > total {
		workers = total
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexCh {
				errCh <- fn(idx)
			}
		}()
	}

feed:
	for idx := 0; idx < total; idx++ {
		select {
		case indexCh <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexCh)

	wg.Wait()
	close(errCh)

	batchErr := &BatchError{}
	for err := range errCh {
		batchErr.append(err)
	}
	if err := ctx.Err(); err != nil {
		batchErr.append(err)
	}
	return batchErr.asError()
}
