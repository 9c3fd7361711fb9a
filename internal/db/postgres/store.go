// Package postgres reads postings and candidate profiles from PostgreSQL via pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/intransparency/talentsearch/internal/db"
	"github.com/intransparency/talentsearch/internal/domain/search/predicate"
	"github.com/intransparency/talentsearch/internal/domain/search/record"
)

// Compile-time check: Store implements db.Lifecycle.
var _ db.Lifecycle = (*Store)(nil)

// querier is the subset of pgxpool.Pool the store uses.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// Config holds connection parameters.
type Config struct {
	DSN      string
	MaxConns int32
}

// Store runs read-only queries over a pgx pool.
type Store struct {
	pool *pgxpool.Pool
	q    querier
}

// NewStore creates a pool. It does not wait for the server; see WaitForReady.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return &Store{pool: pool, q: pool}, nil
}

// NewStoreForTest creates a Store over the provided querier (test-only).
func NewStoreForTest(q querier) *Store {
	return &Store{q: q}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.q.Ping(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// SearchPostings returns the postings matching q.
func (s *Store) SearchPostings(ctx context.Context, q predicate.Query) ([]record.Posting, error) {
	sql, args, err := selectQuery(postingsTable, postingColumns, q)
	if err != nil {
		return nil, err
	}

	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer rows.Close()

	var out []record.Posting
	for rows.Next() {
		var (
			p                           record.Posting
			company, location, currency *string
		)
		if err := rows.Scan(
			&p.ID, &p.Title, &company, &location, &p.JobType,
			&p.SalaryMin, &p.SalaryMax, &currency, &p.ShowSalary,
			&p.RequiredSkills, &p.PreferredSkills, &p.PostedAt, &p.Featured,
		); err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		p.CompanyName = deref(company)
		p.Location = deref(location)
		p.SalaryCurrency = deref(currency)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	return out, nil
}

// SearchCandidates returns the candidate profiles matching q with up to five
// public projects each.
func (s *Store) SearchCandidates(ctx context.Context, q predicate.Query) ([]record.Candidate, error) {
	sql, args, err := selectQuery(candidatesTable, candidateColumns, q)
	if err != nil {
		return nil, err
	}

	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer rows.Close()

	var out []record.Candidate
	for rows.Next() {
		var (
			c                                    record.Candidate
			first, last, university, degree, gpa *string
		)
		if err := rows.Scan(
			&c.ID, &first, &last, &university, &degree, &gpa, &c.GPAPublic, &c.CreatedAt,
		); err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		c.FirstName = deref(first)
		c.LastName = deref(last)
		c.University = deref(university)
		c.Degree = deref(degree)
		c.GPA = deref(gpa)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	rows.Close()

	if len(out) == 0 {
		return out, nil
	}
	if err := s.attachProjects(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) attachProjects(ctx context.Context, candidates []record.Candidate) error {
	ids := make([]string, len(candidates))
	index := make(map[string]int, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
		index[c.ID] = i
	}

	rows, err := s.q.Query(ctx, projectsQuery, ids, maxProjectsPerCandidate)
	if err != nil {
		return &db.Error{Op: db.OpQuery, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID string
			p      record.Project
		)
		if err := rows.Scan(&userID, &p.Skills, &p.Technologies, &p.Tools); err != nil {
			return &db.Error{Op: db.OpScan, Err: err}
		}
		if i, ok := index[userID]; ok {
			candidates[i].Projects = append(candidates[i].Projects, p)
		}
	}
	if err := rows.Err(); err != nil {
		return &db.Error{Op: db.OpQuery, Err: err}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
