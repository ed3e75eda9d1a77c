// Package store persists built project documents.
//
// The server keeps every successful build so clients can re-download a
// document without rebuilding it. The CLI does not need persistence and
// uses the in-memory implementation, which also backs the tests.
package store

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no record carries the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable is returned when the backend cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// Record is one persisted build result.
type Record struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	RequestHash string    `bson:"request_hash" json:"request_hash"`
	Mode        string    `bson:"mode" json:"mode"`
	NodeCount   int       `bson:"node_count" json:"node_count"`
	Repaired    bool      `bson:"repaired" json:"repaired"`
	Document    []byte    `bson:"document" json:"-"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Store is the persistence interface for build records.
type Store interface {
	// Put inserts or replaces a record by id.
	Put(ctx context.Context, rec Record) error

	// Get returns the record with the given id.
	Get(ctx context.Context, id string) (Record, error)

	// List returns the most recent records, newest first, up to limit.
	// A non-positive limit returns everything.
	List(ctx context.Context, limit int) ([]Record, error)

	// Delete removes a record. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
