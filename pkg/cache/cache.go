// Package cache stores coloring results and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: stores nothing, used when caching is disabled
//
// # Keys
//
// Keys are built by a [Keyer] from content hashes so equal inputs map to the
// same entry regardless of where they came from:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ResultKey(cache.Hash(graphJSON), cache.ResultKeyOpts{Params: p, Seed: 42})
//
// Only seeded runs are cacheable; an unseeded run is not reproducible and
// never reaches the cache.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default lifetimes per entry kind.
const (
	TTLResult   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
