package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/interfaces"
)

// RedisCache stores entries in Redis with native expiry. When Redis is
// unreachable it reads and writes the in-memory fallback instead.
type RedisCache struct {
	rdb    *redis.Client
	mem    *MemoryCache
	logger *common.Logger
}

// NewRedisCache connects to Redis and pings it.
func NewRedisCache(ctx context.Context, cfg common.RedisConfig, fallback *MemoryCache, logger *common.Logger) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}

	return newRedisCache(rdb, fallback, logger), nil
}

func newRedisCache(rdb *redis.Client, fallback *MemoryCache, logger *common.Logger) *RedisCache {
	if fallback == nil {
		fallback = NewMemoryCache()
	}
	return &RedisCache{rdb: rdb, mem: fallback, logger: logger}
}

// Get returns the value for key, consulting the memory fallback on Redis errors.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		return b, true
	}
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	r.logger.Warn().Err(err).Str("key", key).Msg("Redis get failed, using memory cache")
	return r.mem.Get(ctx, key)
}

// Set writes value with expiry ttl, falling back to memory on Redis errors.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("Redis set failed, using memory cache")
		r.mem.Set(ctx, key, value, ttl)
	}
}

// Close releases the Redis connection pool
func (r *RedisCache) Close() error {
	return r.rdb.Close()
}

// Ensure RedisCache implements Cache
var _ interfaces.Cache = (*RedisCache)(nil)
