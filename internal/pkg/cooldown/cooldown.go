// Package cooldown provides a Redis-backed rate gate for operations that must
// not repeat within a window, such as re-sending a one-time code.
package cooldown

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Gate limits how often an operation keyed by a string may run.
type Gate interface {
	// Acquire attempts to claim the key for the given window. It returns
	// true when the caller may proceed. When the key is still cooling down
	// it returns false together with the remaining wait time.
	Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error)

	// Release clears the key so the next Acquire succeeds immediately.
	Release(ctx context.Context, key string) error
}

// RedisGate implements Gate on top of a Redis SET NX with expiry.
type RedisGate struct {
	client *redis.Client
	prefix string
}

// NewRedisGate creates a Gate backed by the given Redis client.
func NewRedisGate(client *redis.Client) *RedisGate {
	return &RedisGate{
		client: client,
		prefix: "cooldown:",
	}
}

func (g *RedisGate) Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	fk := g.prefix + key

	acquired, err := g.client.SetNX(ctx, fk, "1", window).Result()
	if err != nil {
		return false, 0, err
	}
	if acquired {
		return true, 0, nil
	}

	remaining, err := g.client.TTL(ctx, fk).Result()
	if err != nil {
		return false, 0, err
	}
	if remaining < 0 {
		remaining = 0
	}

	return false, remaining, nil
}

func (g *RedisGate) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.prefix+key).Err()
}
