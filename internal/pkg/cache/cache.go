// Package cache provides a small key/value cache abstraction backed by Redis.
package cache

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrMiss indicates the key is not present in the cache.
var ErrMiss = errors.New("cache: miss")

// Cache defines byte-oriented cache operations with per-key TTL.
type Cache interface {
	io.Closer

	// Get returns the cached value or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del removes the key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error
}
