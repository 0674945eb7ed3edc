package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"campus-transport-backend/internal/logger"
)

const keyNamespace = "ct:ref"

// RedisCache implements Cache on a shared Redis instance so multiple API
// replicas see one invalidation. Keys carry a generation counter;
// InvalidateAll bumps the counter instead of scanning for keys.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects and verifies the Redis instance is reachable.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, keyNamespace+":gen").Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) ([]byte, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		logger.Warn("Cache generation read failed, bypassing cache", "error", err)
		return fetch(ctx)
	}
	fullKey := fmt.Sprintf("%s:g%d:%s", keyNamespace, gen, key)

	value, err := c.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		return value, nil
	}
	if err != redis.Nil {
		logger.Warn("Cache read failed, bypassing cache", "key", fullKey, "error", err)
		return fetch(ctx)
	}

	value, err = fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, fullKey, value, ttl).Err(); err != nil {
		logger.Warn("Cache write failed", "key", fullKey, "error", err)
	}
	return value, nil
}

func (c *RedisCache) InvalidateAll(ctx context.Context) error {
	// Stale generations age out via their TTLs.
	return c.client.Incr(ctx, keyNamespace+":gen").Err()
}

func (c *RedisCache) Close() error { return c.client.Close() }
