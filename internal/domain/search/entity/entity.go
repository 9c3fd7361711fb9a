// Package entity holds the normalized filters derived from a free-text query.
package entity

import "strings"

// JobType is a canonical posting type token as stored in the datastore.
type JobType string

// Job type constants.
const (
	FullTime   JobType = "FULL_TIME"
	PartTime   JobType = "PART_TIME"
	Internship JobType = "INTERNSHIP"
	Contract   JobType = "CONTRACT"
	Temporary  JobType = "TEMPORARY"
	Volunteer  JobType = "VOLUNTEER"
)

// jobTypeAliases maps upper-cased raw spellings to canonical tokens.
var jobTypeAliases = map[string]JobType{
	"INTERNSHIP":  Internship,
	"STAGE":       Internship,
	"TIROCINIO":   Internship,
	"CURRICULARE": Internship,
	"FULL_TIME":   FullTime,
	"FULL TIME":   FullTime,
	"FULL-TIME":   FullTime,
	"FULLTIME":    FullTime,
	"PART_TIME":   PartTime,
	"PART TIME":   PartTime,
	"PART-TIME":   PartTime,
	"PARTTIME":    PartTime,
	"CONTRACT":    Contract,
	"FREELANCE":   Contract,
	"TEMPORARY":   Temporary,
	"VOLUNTEER":   Volunteer,
}

// CanonicalJobType maps a raw or already-canonical job type to its enum token.
// Unknown values are upper-cased and passed through.
func CanonicalJobType(raw string) JobType {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if jt, ok := jobTypeAliases[upper]; ok {
		return jt
	}
	return JobType(upper)
}

// Set is the normalized intermediate representation between classification
// and query compilation. Skills and universities are lower-cased, job types are
// canonical, locations keep their display casing and are matched case-insensitively.
type Set struct {
	skills       []string
	locations    []string
	jobTypes     []JobType
	universities []string
}

// New normalizes raw entity lists: trims, drops empties, de-duplicates
// preserving first-seen order.
func New(skills, locations, jobTypes, universities []string) Set {
	s := Set{
		skills:       normalize(skills, strings.ToLower),
		locations:    normalize(locations, nil),
		universities: normalize(universities, strings.ToLower),
	}

	seen := make(map[JobType]struct{}, len(jobTypes))
	for _, raw := range jobTypes {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		jt := CanonicalJobType(raw)
		if _, ok := seen[jt]; ok {
			continue
		}
		seen[jt] = struct{}{}
		s.jobTypes = append(s.jobTypes, jt)
	}
	return s
}

func normalize(in []string, transform func(string) string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if transform != nil {
			v = transform(v)
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Skills returns the requested skills.
func (s Set) Skills() []string { return s.skills }

// Locations returns the requested locations in extraction order.
func (s Set) Locations() []string { return s.locations }

// JobTypes returns the requested canonical job types.
func (s Set) JobTypes() []JobType { return s.jobTypes }

// Universities returns the requested institutions in extraction order.
func (s Set) Universities() []string { return s.universities }

// IsEmpty reports whether no filter was extracted.
func (s Set) IsEmpty() bool {
	return len(s.skills) == 0 && len(s.locations) == 0 &&
		len(s.jobTypes) == 0 && len(s.universities) == 0
}

// FirstLocation returns the first extracted location.
// Filtering deliberately narrows to this single location.
func (s Set) FirstLocation() (string, bool) {
	if len(s.locations) == 0 {
		return "", false
	}
	return s.locations[0], true
}

// FirstUniversity returns the first extracted institution.
func (s Set) FirstUniversity() (string, bool) {
	if len(s.universities) == 0 {
		return "", false
	}
	return s.universities[0], true
}
