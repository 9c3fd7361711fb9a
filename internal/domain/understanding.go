package domain

import (
	"context"

	"github.com/intransparency/talentsearch/internal/domain/search/audience"
	"github.com/intransparency/talentsearch/internal/domain/search/entity"
	"github.com/intransparency/talentsearch/internal/domain/search/result"
)

// Classifier is the language-understanding contract between layers.
// Implementations return ErrAssistantUnavailable (wrapped) on any failure.
type Classifier interface {
	Classify(ctx context.Context, query string, aud audience.Audience, sessionID string) (*Understanding, error)
}

// HealthChecker verifies classifier provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Understanding is what the language-understanding service made of a query.
// Every field is optional.
type Understanding struct {
	Message          string
	Intent           string
	Entities         entity.Set
	SuggestedActions []result.SuggestedAction
	SessionID        string
}
