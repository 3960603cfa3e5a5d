// Package cache is the port the feed cache decorator talks to.
package cache

import (
	"context"
	"time"
)

// CacheRepository is a byte-oriented key/value cache with expiry.
// Get returns ErrNotFound when key is absent or expired.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CacheError is a sentinel error returned by cache implementations.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrNotFound reports a cache miss. Callers compare with errors.Is.
const ErrNotFound = CacheError("cache: key not found")
