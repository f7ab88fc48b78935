package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "deal-engine:worksheet:"

// RedisCache is a CacheRepository backed by Redis with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, cacheKeyPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, cacheKeyPrefix+key, value, r.ttl).Err()
}
