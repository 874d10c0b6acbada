// Package cache provides TTL key/value stores used for cache-aside reads.
package cache

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/bobmcallan/stockpulse/internal/interfaces"
)

// DefaultShards is the shard count used when none is configured.
const DefaultShards = 32

type entry struct {
	value      []byte
	insertedAt time.Time
	ttl        time.Duration
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// MemoryCache is an in-process TTL cache. Keys are spread over independently
// locked shards so unrelated keys never contend. Expired entries are evicted
// lazily on lookup.
type MemoryCache struct {
	shards []*shard
	now    func() time.Time
}

// MemoryOption configures a MemoryCache
type MemoryOption func(*MemoryCache)

// WithShards sets the number of shards
func WithShards(n int) MemoryOption {
	return func(c *MemoryCache) {
		if n > 0 {
			c.shards = newShards(n)
		}
	}
}

// WithClock injects the time source used for expiry
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

// NewMemoryCache creates an empty cache
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		shards: newShards(DefaultShards),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newShards(n int) []*shard {
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{entries: make(map[string]entry)}
	}
	return shards
}

func (c *MemoryCache) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return c.shards[h.Sum32()%uint32(len(c.shards))]
}

// Get returns a copy of the value stored under key when now - insertedAt < ttl.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	s := c.shardFor(key)
	now := c.now()

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if now.Sub(e.insertedAt) >= e.ttl {
		s.mu.Lock()
		// A concurrent Set may have replaced the entry since the read
		if cur, ok := s.entries[key]; ok && cur.insertedAt.Equal(e.insertedAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

// Set stores a copy of value under key. Non-positive ttl is ignored.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	v := make([]byte, len(value))
	copy(v, value)

	s := c.shardFor(key)
	s.mu.Lock()
	s.entries[key] = entry{value: v, insertedAt: c.now(), ttl: ttl}
	s.mu.Unlock()
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *MemoryCache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// Ensure MemoryCache implements Cache
var _ interfaces.Cache = (*MemoryCache)(nil)
