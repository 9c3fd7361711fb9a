package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/intransparency/talentsearch/internal/domain"
	"github.com/intransparency/talentsearch/internal/domain/search/predicate"
	"github.com/intransparency/talentsearch/internal/domain/search/record"
	"github.com/intransparency/talentsearch/internal/metrics"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchPostings(ctx context.Context, q predicate.Query) ([]record.Posting, error)
	SearchCandidates(ctx context.Context, q predicate.Query) ([]record.Candidate, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store   store
	timeout time.Duration
}

// New creates a search repository. Each query runs under timeout; zero disables the bound.
func New(s store, timeout time.Duration) *Repo {
	return &Repo{store: s, timeout: timeout}
}

// Postings returns the postings matching q.
func (r *Repo) Postings(ctx context.Context, q predicate.Query) ([]record.Posting, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	start := time.Now()
	rows, err := r.store.SearchPostings(ctx, q)
	observe("postings", start, err)
	if err != nil {
		return nil, wrap("postings", err)
	}
	return rows, nil
}

// Candidates returns the candidate profiles matching q.
func (r *Repo) Candidates(ctx context.Context, q predicate.Query) ([]record.Candidate, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	start := time.Now()
	rows, err := r.store.SearchCandidates(ctx, q)
	observe("candidates", start, err)
	if err != nil {
		return nil, wrap("candidates", err)
	}
	return rows, nil
}

func (r *Repo) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func observe(shape string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.StoreQueryDuration.WithLabelValues(shape, status).Observe(time.Since(start).Seconds())
}

// wrap maps datastore failures to domain.ErrStoreUnavailable. A cancelled
// caller context is passed through unchanged.
func wrap(shape string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("search %s: %w", shape, err)
	}
	return fmt.Errorf("search %s: %w: %w", shape, domain.ErrStoreUnavailable, err)
}
