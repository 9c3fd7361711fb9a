package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/intransparency/talentsearch/internal/domain"
	"github.com/intransparency/talentsearch/internal/domain/search/audience"
	"github.com/intransparency/talentsearch/internal/domain/search/entity"
	"github.com/intransparency/talentsearch/internal/domain/search/request"
	"github.com/intransparency/talentsearch/internal/domain/search/result"
	"github.com/intransparency/talentsearch/internal/logger"
	"github.com/intransparency/talentsearch/internal/metrics"
	"github.com/intransparency/talentsearch/internal/usecase/classify"
	"github.com/intransparency/talentsearch/internal/usecase/extract"
)

// Options tune query compilation and conversational handling.
type Options struct {
	// ResultLimit caps each query; DefaultResultLimit when zero.
	ResultLimit int
	// FollowUpDetection answers conversational queries with a fixed message
	// when the assistant produced nothing.
	FollowUpDetection bool
}

// Input is the raw caller input of one search.
type Input struct {
	Query     string
	Type      string
	SessionID string
}

// Service handles natural-language search for every audience.
type Service struct {
	limiter   Limiter
	resolver  Resolver
	repo      Repository
	compiler  Compiler
	followUps bool
	now       func() time.Time
}

// New creates a search service.
func New(limiter Limiter, resolver Resolver, repo Repository, opts Options) *Service {
	return &Service{
		limiter:   limiter,
		resolver:  resolver,
		repo:      repo,
		compiler:  NewCompiler(opts.ResultLimit),
		followUps: opts.FollowUpDetection,
		now:       time.Now,
	}
}

// Admit consumes one request from the client's window.
// Returns domain.ErrRateLimited once the window is exhausted.
func (s *Service) Admit(ctx context.Context, clientKey string) error {
	if !s.limiter.Allow(ctx, clientKey) {
		return domain.ErrRateLimited
	}
	return nil
}

// Search runs one request: rate check, validation, classification, query and
// composition. Errors wrap domain.ErrRateLimited, domain.ErrInvalidRequest or
// domain.ErrStoreUnavailable; a cancelled ctx is returned as is.
func (s *Service) Search(ctx context.Context, clientKey string, in Input) (result.Response, error) {
	if err := s.Admit(ctx, clientKey); err != nil {
		return result.Response{}, err
	}

	req, err := request.New(in.Query, audience.Audience(in.Type), in.SessionID)
	if err != nil {
		return result.Response{}, err
	}

	sessionID := req.SessionID()
	if sessionID == "" {
		sessionID = NewSessionID(s.now())
	}
	ctx = logger.With(ctx,
		zap.String("audience", string(req.Audience())),
		zap.String("session_id", sessionID),
	)

	outcome := s.resolver.Resolve(ctx, req.Query(), req.Audience(), sessionID)

	if s.followUps && outcome.Upstream == nil && extract.IsFollowUp(req.Query()) {
		set := result.Set{Type: req.Audience().DefaultResultType()}
		return result.NewResponse(FollowUpMessage, set, nil, sessionID), nil
	}

	set, err := s.dispatch(ctx, req, outcome)
	if err != nil {
		return result.Response{}, err
	}

	metrics.SearchResultsReturned.WithLabelValues(string(set.Type)).Observe(float64(set.Len()))
	logger.FromContext(ctx).Debug("search completed",
		zap.String("result_type", string(set.Type)),
		zap.Int("results", set.Len()),
		zap.String("intent", outcome.Intent()),
		zap.String("fallback", outcome.FallbackReason),
	)

	var (
		message string
		actions []result.SuggestedAction
	)
	if up := outcome.Upstream; up != nil {
		message = up.Message
		actions = up.SuggestedActions
		if up.SessionID != "" {
			sessionID = up.SessionID
		}
	}
	if message == "" {
		message = TemplateMessage(set.Len(), set.Type, extract.SearchTerms(req.Query()))
	}

	return result.NewResponse(message, set, actions, sessionID), nil
}

// dispatch selects the record shape by audience. Institutions get the shape
// their query prefers, then the other one when the first is empty.
func (s *Service) dispatch(ctx context.Context, req request.Request, outcome classify.Outcome) (result.Set, error) {
	switch req.Audience() {
	case audience.Student:
		return s.fetch(ctx, audience.Jobs, outcome.Entities)
	case audience.Company:
		return s.fetch(ctx, audience.Candidates, outcome.Entities)
	}

	preferred, other := audience.Jobs, audience.Candidates
	if PrefersCandidates(outcome.Intent(), req.Query()) {
		preferred, other = audience.Candidates, audience.Jobs
	}

	first, err := s.fetch(ctx, preferred, outcome.Entities)
	if err != nil || first.Len() > 0 {
		return first, err
	}
	second, err := s.fetch(ctx, other, outcome.Entities)
	if err != nil {
		return result.Set{}, err
	}
	if second.Len() > 0 {
		return second, nil
	}
	return first, nil
}

func (s *Service) fetch(ctx context.Context, rt audience.ResultType, e entity.Set) (result.Set, error) {
	if err := ctx.Err(); err != nil {
		return result.Set{}, fmt.Errorf("search %s: %w", rt, err)
	}

	if rt == audience.Candidates {
		rows, err := s.repo.Candidates(ctx, s.compiler.Candidates(e))
		if err != nil {
			return result.Set{}, err
		}
		return ComposeSet(rt, nil, rows), nil
	}

	rows, err := s.repo.Postings(ctx, s.compiler.Jobs(e))
	if err != nil {
		return result.Set{}, err
	}
	return ComposeSet(rt, rows, nil), nil
}
