package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stockpulse/internal/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)}
}

func TestMemoryCache_GetSetExpiry(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c := NewMemoryCache(WithClock(clock.Now))

	_, ok := c.Get(ctx, "quote:AAPL")
	assert.False(t, ok)

	c.Set(ctx, "quote:AAPL", []byte("v1"), 60*time.Second)

	clock.Advance(59 * time.Second)
	got, ok := c.Get(ctx, "quote:AAPL")
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	clock.Advance(1 * time.Second)
	_, ok = c.Get(ctx, "quote:AAPL")
	assert.False(t, ok, "entry must be absent once now - insertedAt == ttl")
	assert.Equal(t, 0, c.Len(), "expired entry evicted lazily")
}

func TestMemoryCache_OverwriteResetsTTL(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c := NewMemoryCache(WithClock(clock.Now), WithShards(4))

	c.Set(ctx, "k", []byte("a"), 10*time.Second)
	clock.Advance(8 * time.Second)
	c.Set(ctx, "k", []byte("b"), 10*time.Second)
	clock.Advance(8 * time.Second)

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("b"), got)
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	in := []byte("abc")
	c.Set(ctx, "k", in, time.Minute)
	in[0] = 'x'

	out, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), out)

	out[0] = 'y'
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryCache_NonPositiveTTLIgnored(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	c.Set(ctx, "k", []byte("v"), 0)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(WithShards(8))

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%20)
				c.Set(ctx, key, []byte(fmt.Sprintf("%d-%d", w, i)), time.Minute)
				_, _ = c.Get(ctx, key)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 20, c.Len())
}

func TestLoadStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	q := models.Quote{Symbol: "AAPL", Price: 195.89, ChangePercent: 1.27}
	require.NoError(t, Store(ctx, c, QuoteKey("AAPL"), q, time.Minute))

	got, ok := Load[models.Quote](ctx, c, QuoteKey("AAPL"))
	require.True(t, ok)
	assert.Equal(t, q, got)

	_, ok = Load[models.Quote](ctx, c, QuoteKey("MSFT"))
	assert.False(t, ok)

	c.Set(ctx, "bad", []byte("{not json"), time.Minute)
	_, ok = Load[models.Quote](ctx, c, "bad")
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "quote:AAPL", QuoteKey("AAPL"))
	assert.Equal(t, "company:AAPL", CompanyKey("AAPL"))
	assert.Equal(t, "search:apple", SearchKey("ApPle"))
	assert.Equal(t, "history:AAPL:1M", HistoryKey("AAPL", models.Period1M))
	assert.Equal(t, "trending", TrendingKey)

	symbols := []string{"MSFT", "AAPL"}
	assert.Equal(t, "compare:AAPL,MSFT:3M", CompareKey(symbols, models.Period3M))
	assert.Equal(t, []string{"MSFT", "AAPL"}, symbols, "caller slice must not be reordered")
}
