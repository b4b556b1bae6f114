// Package cache stores computed escape fields so repeated frames skip the
// escape-time computation.
//
// Fields are a pure function of (viewport, resolution, iteration limit), so
// a cached entry never goes stale; the TTL only bounds storage. Several
// backends implement [Cache]:
//
//   - [FileCache]: one JSON file per key, used by the CLI
//   - [MemoryCache]: bounded in-process LRU, used by the HTTP server
//   - [RedisCache] and [MongoCache]: shared caches for several servers
//   - [NullCache]: caching disabled
//
// [Open] selects a backend from a config string.
package cache

import (
	"context"
	"time"
)

// DefaultTTL bounds how long a field stays cached.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store keyed by string.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored data and true, or nil and false on a miss.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
// Used for --no-cache and in tests.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (c *NullCache) Delete(context.Context, string) error                     { return nil }
func (c *NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
