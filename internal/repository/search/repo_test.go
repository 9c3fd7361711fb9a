package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/intransparency/talentsearch/internal/domain"
	"github.com/intransparency/talentsearch/internal/domain/search/predicate"
	"github.com/intransparency/talentsearch/internal/domain/search/record"
)

func TestPostings_AppliesTimeout(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	m := &mockStore{postingsFn: func(ctx context.Context, _ predicate.Query) ([]record.Posting, error) {
		deadline, hasDeadline = ctx.Deadline()
		return []record.Posting{{ID: "job-1"}}, nil
	}}

	rows, err := New(m, 5*time.Second).Postings(context.Background(), predicate.Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !hasDeadline {
		t.Fatal("expected a deadline on the query context")
	}
	if until := time.Until(deadline); until <= 0 || until > 5*time.Second {
		t.Errorf("deadline in %s, want within 5s", until)
	}
}

func TestCandidates_NoTimeout(t *testing.T) {
	m := &mockStore{candidatesFn: func(ctx context.Context, _ predicate.Query) ([]record.Candidate, error) {
		if _, ok := ctx.Deadline(); ok {
			t.Error("expected no deadline")
		}
		return nil, nil
	}}

	if _, err := New(m, 0).Candidates(context.Background(), predicate.Query{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStoreErrorMapsToUnavailable(t *testing.T) {
	m := &mockStore{
		postingsFn: func(context.Context, predicate.Query) ([]record.Posting, error) {
			return nil, errors.New("connection refused")
		},
		candidatesFn: func(context.Context, predicate.Query) ([]record.Candidate, error) {
			return nil, context.DeadlineExceeded
		},
	}
	r := New(m, time.Second)

	if _, err := r.Postings(context.Background(), predicate.Query{}); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("postings: expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := r.Candidates(context.Background(), predicate.Query{}); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("candidates: expected ErrStoreUnavailable on timeout, got %v", err)
	}
}

func TestCancelledCallerIsNotStoreFailure(t *testing.T) {
	m := &mockStore{postingsFn: func(context.Context, predicate.Query) ([]record.Posting, error) {
		return nil, context.Canceled
	}}

	_, err := New(m, time.Second).Postings(context.Background(), predicate.Query{})
	if errors.Is(err, domain.ErrStoreUnavailable) {
		t.Error("cancellation must not be reported as a store failure")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
