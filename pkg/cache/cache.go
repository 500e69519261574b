// Package cache stores rendered bracket artifacts.
//
// A render is a pure function of the bracket and the render options, so the
// output bytes can be cached under a key derived from both. Four backends
// implement [Cache]:
//
//   - [NullCache]: Never stores anything (caching disabled)
//   - [FileCache]: One JSON file per entry, for the CLI
//   - [RedisCache]: Shared cache for server deployments
//   - [MongoCache]: Shared cache with a TTL index
//
// [Open] selects a backend by name from configuration. Keys come from a
// [Keyer]; [ScopedKeyer] prefixes them to separate deployments sharing one
// backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 7 * 24 * time.Hour
