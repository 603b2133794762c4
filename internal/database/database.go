// Package database provides the document-store abstraction for UniSync.
//
// The Database interface hides SurrealDB behind three query methods:
//   - Query: multiple results (SELECT returning lists)
//   - QueryOne: a single result (SELECT by id)
//   - Execute: no return value (CREATE/UPDATE/DELETE mutations)
//
// Every call is bounded by the configured operation timeout; a call that
// exceeds it fails with ErrUnavailable so the boundary can answer 503
// instead of hanging a request on a slow or dead store.
//
// Multi-record mutations that must land together (an account's identity
// and profile) go through AtomicBatch, which wraps the accumulated
// statements in BEGIN TRANSACTION / COMMIT TRANSACTION and executes them
// in one round trip.
//
// Standard errors are checked with errors.Is:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // record does not exist
//	}
package database

import (
	"context"
	"errors"
	"time"
)

// Standard errors for storage operations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (duplicate email).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")

	// ErrUnavailable indicates the store did not answer within the
	// configured operation timeout.
	ErrUnavailable = errors.New("storage unavailable")
)

// Database defines the operations repositories are written against.
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns the raw result set.
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns the first record, or ErrNotFound.
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a mutation without returning results.
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds connection settings for the document store.
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string

	// OpTimeout bounds each storage call. Zero means no bound.
	OpTimeout time.Duration
}
