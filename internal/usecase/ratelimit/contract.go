package ratelimit

import (
	"context"
	"time"
)

// Store counts hits per key in fixed windows.
type Store interface {
	Hit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
