// Package cache provides pluggable byte caches for computed group results.
//
// Stabilizer chain construction is the expensive step of every query, and its
// inputs (the generator list) canonicalize well, so order, membership and
// orbit answers are cached under content-addressed keys. Backends cover the
// CLI (file), the server (redis) and tests (memory, null).
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
