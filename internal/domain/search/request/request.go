package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/intransparency/talentsearch/internal/domain"
	"github.com/intransparency/talentsearch/internal/domain/search/audience"
)

// MaxQueryLength is the maximum allowed query length in characters.
const MaxQueryLength = 500

// Request is a validated natural-language search request.
type Request struct {
	query     string
	audience  audience.Audience
	sessionID string
}

// New validates caller input. Errors wrap domain.ErrInvalidRequest.
func New(query string, aud audience.Audience, sessionID string) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, domain.NewValidationError("query is required")
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, domain.NewValidationError(
			fmt.Sprintf("query too long (max %d chars)", MaxQueryLength),
		)
	}
	if !aud.IsValid() {
		return Request{}, domain.NewValidationError("type must be student, company, or university")
	}
	return Request{
		query:     query,
		audience:  aud,
		sessionID: strings.TrimSpace(sessionID),
	}, nil
}

// Query returns the trimmed query text.
func (r Request) Query() string { return r.query }

// Audience returns the caller-declared audience.
func (r Request) Audience() audience.Audience { return r.audience }

// SessionID returns the inbound session id, empty if none was supplied.
func (r Request) SessionID() string { return r.sessionID }
