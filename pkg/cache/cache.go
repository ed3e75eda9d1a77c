// Package cache provides pluggable result caching for the build pipeline.
//
// Backends share one small interface so the CLI can run against a local
// file cache while the API server points at Redis. Keys are derived from
// request content, never from wall-clock state, so identical build requests
// collapse onto one entry.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per artifact class.
const (
	// TTLDocument covers assembled project documents.
	TTLDocument = 24 * time.Hour
	// TTLPreview covers rendered graph previews.
	TTLPreview = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A non-positive ttl stores
	// the entry without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for the pipeline's artifact classes.
type Keyer interface {
	// DocumentKey keys an assembled document by its request hash.
	DocumentKey(requestHash string, opts DocumentKeyOpts) string

	// PreviewKey keys a rendered preview by the graph content hash.
	PreviewKey(graphHash string, opts PreviewKeyOpts) string
}

// DocumentKeyOpts are the request parameters that change the assembled
// document for the same graph definition.
type DocumentKeyOpts struct {
	Mode       string // property emission mode
	Resolution int
}

// PreviewKeyOpts are the parameters that change a rendered preview.
type PreviewKeyOpts struct {
	Format string // "dot" or "svg"
}

// DefaultKeyer derives keys by hashing the option structs. Key layout is
// "<class>:<content hash>:<option hash>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for an assembled document.
func (k *DefaultKeyer) DocumentKey(requestHash string, opts DocumentKeyOpts) string {
	return hashKey("doc:"+requestHash, opts)
}

// PreviewKey generates a key for a rendered preview.
func (k *DefaultKeyer) PreviewKey(graphHash string, opts PreviewKeyOpts) string {
	return hashKey("preview:"+graphHash, opts)
}
