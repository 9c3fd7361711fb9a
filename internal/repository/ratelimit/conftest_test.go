package ratelimit

import (
	"context"
	"sync"
	"time"
)

// mockWindowStore implements windowStore for tests.
type mockWindowStore struct {
	hitFn func(ctx context.Context, key string, limit int, window time.Duration) (bool, int64, error)
}

func (m *mockWindowStore) HitFixedWindow(
	ctx context.Context, key string, limit int, window time.Duration,
) (bool, int64, error) {
	if m.hitFn != nil {
		return m.hitFn(ctx, key, limit, window)
	}
	return true, 1, nil
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
