package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stockpulse/internal/common"
)

// unreachableClient points at a port nothing listens on.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestNewRedisCache_PingFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, common.RedisConfig{Address: "127.0.0.1:1"}, nil, common.NewSilentLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}

func TestRedisCache_FallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	rdb := unreachableClient()
	defer rdb.Close()

	mem := NewMemoryCache()
	rc := newRedisCache(rdb, mem, common.NewSilentLogger())

	rc.Set(ctx, "quote:AAPL", []byte("payload"), time.Minute)

	got, ok := mem.Get(ctx, "quote:AAPL")
	require.True(t, ok, "write should land in the memory fallback")
	assert.Equal(t, []byte("payload"), got)

	got, ok = rc.Get(ctx, "quote:AAPL")
	require.True(t, ok, "read should be served from the memory fallback")
	assert.Equal(t, []byte("payload"), got)

	_, ok = rc.Get(ctx, "quote:MSFT")
	assert.False(t, ok)
}
