// Package graph mirrors the account ledger into a property graph so the
// ownership and transfer structure can be explored with Cypher. The mirror
// is an optional collaborator: the core never depends on it for
// correctness.
package graph

import (
	"context"
	"errors"
)

// Client is the minimal contract the mirror needs from a graph database.
type Client interface {
	Run(ctx context.Context, query string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned by the graph engine.
type Record map[string]any

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
