package loadcache

import (
	"context"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Memory is an in-process get-or-load cache.
//
// Values are stored as-is and every hit returns the same stored instance,
// so callers that key downstream caches on value identity can rely on a
// stable instance per key per validity window. Concurrent loads for the
// same key are deduplicated via singleflight.
type Memory struct {
	policy    Policy
	values    *expirable.LRU[string, any]
	negatives *expirable.LRU[string, struct{}]
	sf        singleflight.Group
}

// NewMemory creates a new in-process cache with the given policy.
func NewMemory(policy Policy) *Memory {
	return &Memory{
		policy:    policy,
		values:    expirable.NewLRU[string, any](policy.MaxEntries, nil, policy.TTL),
		negatives: expirable.NewLRU[string, struct{}](policy.MaxEntries, nil, policy.EffectiveNegativeTTL()),
	}
}

// GetOrLoad returns the cached value for key, invoking loader on a miss.
// A loader result of (nil, nil) is cached as an absence under NegativeTTL
// and returned as (nil, nil) until it expires. Loader errors are returned
// verbatim and nothing is cached for them.
func (c *Memory) GetOrLoad(ctx context.Context, key string, loader Loader) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if loader == nil {
		return nil, ErrNilLoader
	}
	if !c.policy.ShouldCache() {
		return loader(ctx)
	}

	if v, ok := c.values.Get(key); ok {
		return v, nil
	}
	if _, ok := c.negatives.Get(key); ok {
		return nil, nil
	}

	// Deduplicate concurrent loads for the same key.
	v, err, _ := c.sf.Do(key, func() (any, error) {
		// Double-check inside the flight: another goroutine may have
		// populated the entry between the miss and Do.
		if v, ok := c.values.Get(key); ok {
			return v, nil
		}
		if _, ok := c.negatives.Get(key); ok {
			return nil, nil
		}

		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		if v == nil {
			c.negatives.Add(key, struct{}{})
			return nil, nil
		}
		c.values.Add(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate removes any value or absence entry for key.
func (c *Memory) Invalidate(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	c.values.Remove(key)
	c.negatives.Remove(key)
	return nil
}

// Ensure Memory implements Cache
var _ Cache = (*Memory)(nil)
