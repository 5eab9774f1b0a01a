package loadcache

import (
	"context"
	"errors"
	"strings"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilCache   = errors.New("loadcache: cache is nil")
	ErrNilLoader  = errors.New("loadcache: loader is nil")
	ErrInvalidKey = errors.New("loadcache: key is invalid")
	ErrKeyTooLong = errors.New("loadcache: key exceeds max length")
)

// Loader computes the value for a key when the cache has no entry.
// Returning (nil, nil) is a successful absence and is cached as such.
type Loader func(ctx context.Context) (any, error)

// Cache is the interface for get-or-load caching of lookup results.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: the loader is invoked with the caller's context; GetOrLoad
//   itself does not block beyond the loader call.
// - Errors: loader errors are returned to the caller and never cached.
//   A nil value with a nil error is a cached successful absence, distinct
//   from an error.
type Cache interface {
	// GetOrLoad returns the cached value for key, invoking loader on a
	// miss and caching its result. Within a validity window the loader
	// runs at most once per key.
	GetOrLoad(ctx context.Context, key string, loader Loader) (any, error)

	// Invalidate removes any entry for key. Idempotent - no error on miss.
	Invalidate(ctx context.Context, key string) error
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
