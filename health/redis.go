package health

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisChecker verifies the Redis cache tier responds to PING.
type RedisChecker struct {
	client redis.UniversalClient
}

// NewRedisChecker creates a checker over the given Redis client.
func NewRedisChecker(client redis.UniversalClient) *RedisChecker {
	return &RedisChecker{client: client}
}

func (c *RedisChecker) Name() string { return "redis-cache" }

// Check pings the Redis server.
func (c *RedisChecker) Check(ctx context.Context) Result {
	if c.client == nil {
		return Unhealthy("redis client not configured", nil)
	}

	if err := c.client.Ping(ctx).Err(); err != nil {
		return Unhealthy("redis ping failed", err)
	}
	return Healthy("redis reachable")
}

var _ Checker = (*RedisChecker)(nil)
