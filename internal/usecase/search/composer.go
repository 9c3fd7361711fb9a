package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/intransparency/talentsearch/internal/domain/geo"
	"github.com/intransparency/talentsearch/internal/domain/search/audience"
	"github.com/intransparency/talentsearch/internal/domain/search/record"
	"github.com/intransparency/talentsearch/internal/domain/search/result"
)

// Fixed messages used when the assistant did not provide one.
const (
	NoResultsMessage = `The demo searches real database entries. Try one of the example queries on the right, ` +
		`or use broader keywords like "design", "marketing", or "engineering".`
	FollowUpMessage = "I can only process search queries in demo mode. Try describing what you're looking for, " +
		"e.g. skills, field of study, or location!"
)

var jobTypeLabels = map[string]string{
	"FULL_TIME":  "Full-time",
	"PART_TIME":  "Part-time",
	"INTERNSHIP": "Internship",
	"CONTRACT":   "Contract",
	"TEMPORARY":  "Temporary",
	"VOLUNTEER":  "Volunteer",
}

// JobTypeLabel returns the display label of a job type token; unknown tokens pass through.
func JobTypeLabel(jobType string) string {
	if l, ok := jobTypeLabels[jobType]; ok {
		return l
	}
	return jobType
}

// FormatSalary renders a salary range in thousands, truncating.
// Zero or missing bounds are treated as absent; nil when both are.
func FormatSalary(minSalary, maxSalary *int, currency string) *string {
	sym := currencySymbol(currency)
	lo, hasLo := positive(minSalary)
	hi, hasHi := positive(maxSalary)

	var s string
	switch {
	case hasLo && hasHi:
		s = fmt.Sprintf("%s%dk - %s%dk", sym, lo/1000, sym, hi/1000)
	case hasLo:
		s = fmt.Sprintf("%s%dk+", sym, lo/1000)
	case hasHi:
		s = fmt.Sprintf("Up to %s%dk", sym, hi/1000)
	default:
		return nil
	}
	return &s
}

func currencySymbol(code string) string {
	switch code {
	case "EUR":
		return "€"
	case "USD":
		return "$"
	default:
		return code
	}
}

func positive(v *int) (int, bool) {
	if v == nil || *v <= 0 {
		return 0, false
	}
	return *v, true
}

// Initials renders "F.L." from a name; a single initial when only one part
// exists, "U" when neither does.
func Initials(first, last string) string {
	f := firstLetter(first)
	l := firstLetter(last)
	switch {
	case f != "" && l != "":
		return f + "." + l + "."
	case f != "":
		return f
	case l != "":
		return l
	default:
		return "U"
	}
}

func firstLetter(s string) string {
	for _, r := range strings.TrimSpace(s) {
		return strings.ToUpper(string(r))
	}
	return ""
}

// capSkills merges tag lists, drops blanks and case-insensitive duplicates,
// and keeps at most result.MaxSkillTags in first-seen order.
func capSkills(lists ...[]string) []string {
	out := make([]string, 0, result.MaxSkillTags)
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, s := range list {
			s = strings.TrimSpace(s)
			key := strings.ToLower(s)
			if s == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
			if len(out) == result.MaxSkillTags {
				return out
			}
		}
	}
	return out
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// ProjectPosting builds the caller-facing summary of a posting.
func ProjectPosting(p record.Posting) result.PostingSummary {
	s := result.PostingSummary{
		ID:       p.ID,
		Title:    p.Title,
		Company:  p.CompanyName,
		Location: optional(p.Location),
		Type:     JobTypeLabel(p.JobType),
		Skills:   capSkills(p.RequiredSkills, p.PreferredSkills),
	}
	if p.ShowSalary {
		s.Salary = FormatSalary(p.SalaryMin, p.SalaryMax, p.SalaryCurrency)
	}
	if p.Location != "" {
		s.Coordinates = geo.CoordinatesFor(p.Location)
	}
	return s
}

// ProjectCandidate builds the caller-facing summary of a student profile.
// The score is only disclosed when the student made it public.
func ProjectCandidate(c record.Candidate) result.CandidateSummary {
	var lists [][]string
	for _, p := range c.Projects {
		lists = append(lists, p.Skills, p.Technologies, p.Tools)
	}

	s := result.CandidateSummary{
		ID:         c.ID,
		Initials:   Initials(c.FirstName, c.LastName),
		University: optional(c.University),
		Major:      optional(c.Degree),
		Skills:     capSkills(lists...),
	}
	if c.GPAPublic && c.GPA != "" {
		if gpa, err := strconv.ParseFloat(strings.TrimSpace(c.GPA), 64); err == nil {
			s.GPA = &gpa
		}
	}
	if c.University != "" {
		s.Coordinates = geo.CoordinatesFor(c.University)
	}
	return s
}

// ComposeSet projects rows of the given type into a result set.
func ComposeSet(rt audience.ResultType, postings []record.Posting, candidates []record.Candidate) result.Set {
	set := result.Set{Type: rt}
	if rt == audience.Candidates {
		set.Candidates = make([]result.CandidateSummary, 0, len(candidates))
		for _, c := range candidates {
			set.Candidates = append(set.Candidates, ProjectCandidate(c))
		}
		return set
	}
	set.Postings = make([]result.PostingSummary, 0, len(postings))
	for _, p := range postings {
		set.Postings = append(set.Postings, ProjectPosting(p))
	}
	return set
}

// maxMessageTerms bounds the search terms quoted back in a templated message.
const maxMessageTerms = 3

// TemplateMessage synthesizes the reply used when the assistant gave none.
func TemplateMessage(n int, rt audience.ResultType, terms []string) string {
	if len(terms) > maxMessageTerms {
		terms = terms[:maxMessageTerms]
	}
	display := strings.Join(terms, ", ")

	if n == 0 {
		if display == "" {
			return NoResultsMessage
		}
		return fmt.Sprintf("No results found for %q. %s", display, NoResultsMessage)
	}

	subject := "your search"
	if display != "" {
		subject = strconv.Quote(display)
	}

	if rt == audience.Candidates {
		noun := "candidates"
		if n == 1 {
			noun = "candidate"
		}
		return fmt.Sprintf("I found **%d %s** matching %s. Here are the top profiles:", n, noun, subject)
	}

	noun := "jobs"
	if n == 1 {
		noun = "job"
	}
	return fmt.Sprintf("I found **%d %s** matching %s. Here are the top results:", n, noun, subject)
}
