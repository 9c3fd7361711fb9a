package db

import (
	"context"
	"time"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Lifecycle is implemented by every store opened from main.
type Lifecycle interface {
	Pinger
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
