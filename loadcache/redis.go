package loadcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/membercache/observe"
)

// redisEnvelope is the stored wire form of an entry. Absence must survive
// the round trip as a value distinct from "no entry at all".
type redisEnvelope struct {
	Negative bool            `json:"negative,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
}

// Redis is a Redis-backed get-or-load cache.
//
// Values round-trip through JSON, so every hit decodes a fresh allocation:
// Redis is NOT identity-preserving and must not back identity-keyed
// consumers directly (use Memory for those). It suits values addressed by
// content, or a shared tier in front of the backing store.
type Redis struct {
	client redis.UniversalClient
	policy Policy
	prefix string
	logger observe.Logger
	sf     singleflight.Group
}

// RedisOption configures a Redis cache.
type RedisOption func(*Redis)

// WithRedisLogger sets the logger used for degraded-mode warnings.
func WithRedisLogger(logger observe.Logger) RedisOption {
	return func(c *Redis) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRedis creates a Redis-backed cache. All keys are stored under the
// given prefix so unrelated applications can share an instance.
func NewRedis(client redis.UniversalClient, policy Policy, prefix string, opts ...RedisOption) *Redis {
	if prefix == "" {
		prefix = "loadcache"
	}
	c := &Redis{
		client: client,
		policy: policy,
		prefix: prefix,
		logger: observe.NoopLogger().WithComponent("loadcache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrLoad returns the cached value for key, invoking loader on a miss.
// Decoded values carry generic JSON types (map[string]any, []any, string,
// float64, bool). Redis read errors surface to the caller; loader errors
// are never cached. When the loader succeeds but the cache write fails,
// the loaded value is returned and the failure is logged.
func (c *Redis) GetOrLoad(ctx context.Context, key string, loader Loader) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if loader == nil {
		return nil, ErrNilLoader
	}
	if !c.policy.ShouldCache() {
		return loader(ctx)
	}

	storedKey := c.prefix + ":" + key

	if v, ok, err := c.fetch(ctx, storedKey); err != nil {
		return nil, err
	} else if ok {
		return v, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		if v, ok, err := c.fetch(ctx, storedKey); err != nil {
			return nil, err
		} else if ok {
			return v, nil
		}

		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		// The load already succeeded; a failed cache write degrades to an
		// uncached result instead of failing the lookup.
		if storeErr := c.put(ctx, storedKey, v); storeErr != nil {
			c.logger.Warn(ctx, "cache write failed, returning uncached result",
				observe.Field{Key: "key", Value: key},
				observe.Field{Key: "error", Value: storeErr.Error()},
			)
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// fetch returns (value, found, error). A stored absence is (nil, true, nil).
func (c *Redis) fetch(ctx context.Context, storedKey string) (any, bool, error) {
	data, err := c.client.Get(ctx, storedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loadcache: redis get: %w", err)
	}

	var env redisEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false, fmt.Errorf("loadcache: decoding entry: %w", err)
	}
	if env.Negative {
		return nil, true, nil
	}

	var v any
	if err := json.Unmarshal(env.Value, &v); err != nil {
		return nil, false, fmt.Errorf("loadcache: decoding value: %w", err)
	}
	return v, true, nil
}

func (c *Redis) put(ctx context.Context, storedKey string, v any) error {
	env := redisEnvelope{}
	ttl := c.policy.TTL
	if v == nil {
		env.Negative = true
		ttl = c.policy.EffectiveNegativeTTL()
	} else {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("loadcache: encoding value: %w", err)
		}
		env.Value = raw
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("loadcache: encoding entry: %w", err)
	}
	if err := c.client.Set(ctx, storedKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("loadcache: redis set: %w", err)
	}
	return nil
}

// Invalidate removes any entry for key.
func (c *Redis) Invalidate(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := c.client.Del(ctx, c.prefix+":"+key).Err(); err != nil {
		return fmt.Errorf("loadcache: redis del: %w", err)
	}
	return nil
}

// Ensure Redis implements Cache
var _ Cache = (*Redis)(nil)
