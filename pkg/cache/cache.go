// Package cache stores rendered artifacts so repeated renders of the same
// diagram skip Graphviz.
//
// Entries are addressed by string keys; [RenderKey] derives the key for a DOT
// source and output format. [FileCache] persists entries under a directory
// (the CLI uses $XDG_CACHE_HOME/stepsort), and [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the data for key and whether it was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
