// Package result holds the response envelope returned by the search gateway.
package result

import (
	"github.com/intransparency/talentsearch/internal/domain/geo"
	"github.com/intransparency/talentsearch/internal/domain/search/audience"
)

// MaxSkillTags caps the skill tags carried by a single summary.
const MaxSkillTags = 6

// PostingSummary is the caller-facing projection of a job posting.
type PostingSummary struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Company     string           `json:"company"`
	Location    *string          `json:"location"`
	Type        string           `json:"type"`
	Salary      *string          `json:"salary,omitempty"`
	Skills      []string         `json:"skills"`
	Coordinates *geo.Coordinates `json:"coordinates"`
}

// CandidateSummary is the caller-facing projection of a student profile.
// It carries initials only, never the full name.
type CandidateSummary struct {
	ID          string           `json:"id"`
	Initials    string           `json:"initials"`
	University  *string          `json:"university"`
	Major       *string          `json:"major"`
	GPA         *float64         `json:"gpa"`
	Skills      []string         `json:"skills"`
	Coordinates *geo.Coordinates `json:"coordinates"`
}

// SuggestedAction is a follow-up action proposed by the assistant.
type SuggestedAction struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Set is a homogeneous list of summaries tagged by its result type.
type Set struct {
	Type       audience.ResultType
	Postings   []PostingSummary
	Candidates []CandidateSummary
}

// Len returns the number of summaries of the set's type.
func (s Set) Len() int {
	if s.Type == audience.Candidates {
		return len(s.Candidates)
	}
	return len(s.Postings)
}

// Items returns the summaries of the set's type as a single slice.
func (s Set) Items() []any {
	items := make([]any, 0, s.Len())
	if s.Type == audience.Candidates {
		for _, c := range s.Candidates {
			items = append(items, c)
		}
		return items
	}
	for _, p := range s.Postings {
		items = append(items, p)
	}
	return items
}

// Response is the search gateway envelope.
// Results always has ResultCount elements, all of kind ResultType.
type Response struct {
	Message          string              `json:"message"`
	Results          []any               `json:"results"`
	SuggestedActions []SuggestedAction   `json:"suggestedActions"`
	SessionID        string              `json:"sessionId"`
	ResultCount      int                 `json:"resultCount"`
	ResultType       audience.ResultType `json:"resultType"`
}

// NewResponse builds an envelope whose count and type are derived from set.
func NewResponse(message string, set Set, actions []SuggestedAction, sessionID string) Response {
	if actions == nil {
		actions = []SuggestedAction{}
	}
	items := set.Items()
	return Response{
		Message:          message,
		Results:          items,
		SuggestedActions: actions,
		SessionID:        sessionID,
		ResultCount:      len(items),
		ResultType:       set.Type,
	}
}
