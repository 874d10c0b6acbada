package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bobmcallan/stockpulse/internal/interfaces"
)

// Load decodes the value cached under key. Undecodable entries count as misses.
func Load[T any](ctx context.Context, c interfaces.Cache, key string) (T, bool) {
	var v T
	data, ok := c.Get(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// Store encodes v and writes it under key.
func Store[T any](ctx context.Context, c interfaces.Cache, key string, v T, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	c.Set(ctx, key, data, ttl)
	return nil
}
