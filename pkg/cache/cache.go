// Package cache stores fetched pages, laid-out sheets and rendered artifacts.
//
// # Overview
//
// A [Cache] maps string keys to opaque byte slices with an optional
// time-to-live. Three backends are provided:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP API
//
// Keys are produced by a [Keyer] so that every component derives the same
// key from the same inputs. [NewScopedKeyer] prefixes keys for isolation.
package cache

import (
	"context"
	"time"
)

// Time-to-live for each kind of cached value.
const (
	// TTLPage is how long a fetched web page is reused.
	TTLPage = 24 * time.Hour

	// TTLSheet is how long a laid-out sheet is reused.
	TTLSheet = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered artifact is reused.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
