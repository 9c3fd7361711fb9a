package search

import (
	"strings"

	"github.com/intransparency/talentsearch/internal/domain/search/entity"
	"github.com/intransparency/talentsearch/internal/domain/search/predicate"
	"github.com/intransparency/talentsearch/internal/domain/search/record"
)

// DefaultResultLimit caps every compiled query.
const DefaultResultLimit = 10

// Compiler turns entity sets into storage-independent queries for each record shape.
// Empty entity sets compile to the shape's base predicate.
type Compiler struct {
	limit int
}

// NewCompiler creates a compiler capping results at limit (DefaultResultLimit when <= 0).
func NewCompiler(limit int) Compiler {
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	return Compiler{limit: limit}
}

// Jobs compiles a postings query: public active postings, narrowed by job type,
// the first location and skills. Featured first, then newest.
func (c Compiler) Jobs(e entity.Set) predicate.Query {
	base := predicate.And(
		predicate.Eq(record.PostingPublic, true),
		predicate.Eq(record.PostingStatus, record.StatusActive),
	)

	var jobTypes []string
	for _, jt := range e.JobTypes() {
		jobTypes = append(jobTypes, string(entity.CanonicalJobType(string(jt))))
	}

	var location predicate.Node
	if loc, ok := e.FirstLocation(); ok {
		location = predicate.Contains(record.PostingLocation, loc)
	}

	var skills predicate.Node
	if s := e.Skills(); len(s) > 0 {
		text := make([]predicate.Node, 0, 2*len(s))
		for _, skill := range s {
			text = append(text,
				predicate.Contains(record.PostingTitle, skill),
				predicate.Contains(record.PostingDescription, skill),
			)
		}
		skills = predicate.Or(
			predicate.Overlaps(record.PostingRequiredSkills, s...),
			predicate.Overlaps(record.PostingPreferredSkills, s...),
			predicate.Or(text...),
		)
	}

	return predicate.Query{
		Where: predicate.And(
			base,
			predicate.In(record.PostingJobType, jobTypes...),
			location,
			skills,
		),
		OrderBy: []predicate.Order{
			{Field: record.PostingFeatured, Desc: true},
			{Field: record.PostingPostedAt, Desc: true},
		},
		Limit: c.limit,
	}
}

// Candidates compiles a candidates query: students with a public profile,
// narrowed by the first university and by skills found in public projects.
// Newest accounts first.
func (c Compiler) Candidates(e entity.Set) predicate.Query {
	base := predicate.And(
		predicate.Eq(record.CandidateRole, record.RoleStudent),
		predicate.Eq(record.CandidateProfilePublic, true),
	)

	var university predicate.Node
	if u, ok := e.FirstUniversity(); ok {
		university = predicate.Contains(record.CandidateUniversity, u)
	}

	var skills predicate.Node
	if s := e.Skills(); len(s) > 0 {
		skills = predicate.Exists(record.RelationProjects, predicate.And(
			predicate.Eq(record.ProjectPublic, true),
			predicate.Or(
				predicate.Overlaps(record.ProjectSkills, s...),
				predicate.Overlaps(record.ProjectTechnologies, s...),
				predicate.Overlaps(record.ProjectTools, s...),
			),
		))
	}

	return predicate.Query{
		Where:   predicate.And(base, university, skills),
		OrderBy: []predicate.Order{{Field: record.CandidateCreatedAt, Desc: true}},
		Limit:   c.limit,
	}
}

var studentIntents = map[string]struct{}{
	"student_search":    {},
	"candidate_search":  {},
	"student_analytics": {},
	"at_risk_students":  {},
}

// studentKeywords cover English and Italian ("studenti", "laureati").
var studentKeywords = []string{
	"student", "studenti", "studente", "gpa", "candidate", "candidat", "laureat", "graduate",
}

// PrefersCandidates decides whether an institution's query is about students
// rather than postings: the upstream intent wins, then a keyword scan of the raw query.
func PrefersCandidates(intent, query string) bool {
	if _, ok := studentIntents[intent]; ok {
		return true
	}
	lower := strings.ToLower(query)
	for _, kw := range studentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
