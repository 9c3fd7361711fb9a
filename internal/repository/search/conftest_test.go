package search

import (
	"context"

	"github.com/intransparency/talentsearch/internal/domain/search/predicate"
	"github.com/intransparency/talentsearch/internal/domain/search/record"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	postingsFn   func(ctx context.Context, q predicate.Query) ([]record.Posting, error)
	candidatesFn func(ctx context.Context, q predicate.Query) ([]record.Candidate, error)
}

func (m *mockStore) SearchPostings(ctx context.Context, q predicate.Query) ([]record.Posting, error) {
	if m.postingsFn != nil {
		return m.postingsFn(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) SearchCandidates(ctx context.Context, q predicate.Query) ([]record.Candidate, error) {
	if m.candidatesFn != nil {
		return m.candidatesFn(ctx, q)
	}
	return nil, nil
}
