// Package cache stores computed routes between runs.
//
// A [Cache] is a byte-oriented key/value store with per-entry TTL. Three
// backends are provided:
//
//   - [FileCache] keeps entries as JSON files under a directory, for the CLI
//   - [RedisCache] keeps entries in Redis, for servers sharing a cache
//   - [NullCache] stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer]. Route keys hash the dataset fingerprint together
// with the algorithm and endpoints, so editing a map file invalidates every
// route computed from it.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized results.
type Cache interface {
	// Get returns the value for key. A missing or expired entry reports
	// false with a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry and reports how many were removed.
	Clear(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

// NullCache misses on every Get and discards every Set.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Clear(context.Context) (int, error)                       { return 0, nil }
func (NullCache) Close() error                                             { return nil }
