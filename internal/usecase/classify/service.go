// Package classify resolves a query into entities with a two-branch strategy:
// the remote classifier first, the local extractor when it fails or says nothing.
package classify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/intransparency/talentsearch/internal/domain"
	"github.com/intransparency/talentsearch/internal/domain/search/audience"
	"github.com/intransparency/talentsearch/internal/domain/search/entity"
	"github.com/intransparency/talentsearch/internal/metrics"
)

// Fallback reasons, used as metric labels.
const (
	ReasonUnavailable = "unavailable"
	ReasonEmpty       = "empty"
	ReasonDisabled    = "disabled"
)

// Outcome is the resolved classification of one query.
type Outcome struct {
	// Upstream is nil when the primary classifier failed or is disabled.
	Upstream *domain.Understanding
	Entities entity.Set
	// FallbackReason is empty when the entities came from upstream.
	FallbackReason string
}

// FromFallback reports whether the entities came from the local extractor.
func (o Outcome) FromFallback() bool { return o.FallbackReason != "" }

// Intent returns the upstream intent label, if any.
func (o Outcome) Intent() string {
	if o.Upstream == nil {
		return ""
	}
	return o.Upstream.Intent
}

// Service is the primary/fallback classification strategy.
type Service struct {
	primary  domain.Classifier
	fallback Fallback
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates the strategy. primary can be nil (local extraction only).
// timeout bounds the primary call; zero leaves it to the classifier.
func New(primary domain.Classifier, fallback Fallback, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
	}
}

// Resolve classifies query. It never fails: any primary error is logged and
// recovered by the fallback branch. The primary is attempted once.
func (s *Service) Resolve(ctx context.Context, query string, aud audience.Audience, sessionID string) Outcome {
	if s.primary == nil {
		return s.fallbackOutcome(query, nil, ReasonDisabled)
	}

	understanding := s.callPrimary(ctx, query, aud, sessionID)
	if understanding == nil {
		return s.fallbackOutcome(query, nil, ReasonUnavailable)
	}
	if understanding.Entities.IsEmpty() {
		return s.fallbackOutcome(query, understanding, ReasonEmpty)
	}
	return Outcome{Upstream: understanding, Entities: understanding.Entities}
}

func (s *Service) callPrimary(
	ctx context.Context, query string, aud audience.Audience, sessionID string,
) *domain.Understanding {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	u, err := s.primary.Classify(ctx, query, aud, sessionID)
	if err != nil {
		s.logger.Warn("Classifier unavailable, using local extraction",
			zap.String("audience", string(aud)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil
	}
	return u
}

func (s *Service) fallbackOutcome(query string, upstream *domain.Understanding, reason string) Outcome {
	metrics.FallbackExtractionsTotal.WithLabelValues(reason).Inc()
	return Outcome{
		Upstream:       upstream,
		Entities:       s.fallback.Extract(query),
		FallbackReason: reason,
	}
}
