package search

import (
	"context"

	"github.com/intransparency/talentsearch/internal/domain/search/audience"
	"github.com/intransparency/talentsearch/internal/domain/search/predicate"
	"github.com/intransparency/talentsearch/internal/domain/search/record"
	"github.com/intransparency/talentsearch/internal/usecase/classify"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	Postings(ctx context.Context, q predicate.Query) ([]record.Posting, error)
	Candidates(ctx context.Context, q predicate.Query) ([]record.Candidate, error)
}

// Limiter admits or rejects requests per client key.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// Resolver turns a query into entities, with or without the assistant.
type Resolver interface {
	Resolve(ctx context.Context, query string, aud audience.Audience, sessionID string) classify.Outcome
}
