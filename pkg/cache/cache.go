// Package cache stores rendered artifacts between runs.
//
// # Backends
//
//   - [FileCache]: files under a directory; the CLI default (~/.cache/nnviz)
//   - [RedisCache]: a shared Redis instance for `nnviz serve` replicas
//   - [NullCache]: stores nothing; used when caching is disabled
//
// # Keys
//
// Keys come from a [Keyer]. The [DefaultKeyer] hashes the network
// description and the render options separately, so changing only the
// output format or a color reuses nothing but also invalidates nothing else:
//
//	key := keyer.ArtifactKey(cache.Hash(description), cache.ArtifactKeyOpts{
//	    View:   "diagram",
//	    Format: "png",
//	    Style:  optionsHash,
//	})
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. Implementations are safe for
// concurrent use. A zero TTL means the entry never expires.
type Cache interface {
	// Get returns the stored data and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// NullCache stores nothing. It backs --no-cache and servers started without
// a cache backend.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
