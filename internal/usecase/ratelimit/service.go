package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/intransparency/talentsearch/internal/metrics"
)

// UnknownClient is the key used when the caller address cannot be determined.
// It is never limited.
const UnknownClient = "unknown"

// Service admits or rejects requests per client key.
type Service struct {
	store  Store
	limit  int
	window time.Duration
	logger *zap.Logger
}

// New creates a limiter admitting at most limit requests per key per window.
func New(store Store, limit int, window time.Duration, logger *zap.Logger) *Service {
	return &Service{store: store, limit: limit, window: window, logger: logger}
}

// Allow reports whether a request from key may proceed. An empty or unknown
// key is always admitted. Store failures admit the request.
func (s *Service) Allow(ctx context.Context, key string) bool {
	if key == "" || key == UnknownClient {
		return true
	}

	ok, err := s.store.Hit(ctx, key, s.limit, s.window)
	if err != nil {
		metrics.RateLimitStoreErrorsTotal.Inc()
		s.logger.Warn("rate limit store failed, admitting request",
			zap.String("client", key),
			zap.Error(err),
		)
		return true
	}
	if !ok {
		metrics.RateLimitRejectedTotal.Inc()
		s.logger.Info("rate limit exceeded", zap.String("client", key))
	}
	return ok
}
