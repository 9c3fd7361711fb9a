package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// windowStore is the consumer interface for shared counters (ISP).
type windowStore interface {
	HitFixedWindow(ctx context.Context, key string, limit int, window time.Duration) (bool, int64, error)
}

// RedisStore shares fixed-window counters across gateway instances.
type RedisStore struct {
	store  windowStore
	prefix string
}

// NewRedisStore creates a shared store. prefix namespaces the keys
// (e.g. "talentsearch:ratelimit:").
func NewRedisStore(s windowStore, prefix string) *RedisStore {
	return &RedisStore{store: s, prefix: prefix}
}

// Hit records one request for key in the shared window.
func (s *RedisStore) Hit(ctx context.Context, key string, limit int, win time.Duration) (bool, error) {
	ok, _, err := s.store.HitFixedWindow(ctx, s.prefix+key, limit, win)
	if err != nil {
		return false, fmt.Errorf("ratelimit hit %s: %w", key, err)
	}
	return ok, nil
}
