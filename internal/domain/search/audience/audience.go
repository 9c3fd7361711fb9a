package audience

// Audience is the caller-declared role that selects the record shape to search.
type Audience string

// Audience constants.
const (
	// Student is looking for jobs.
	Student Audience = "student"
	// Company is looking for candidates.
	Company Audience = "company"
	// University is looking for either; routing decides per query.
	University Audience = "university"
)

// IsValid checks if the audience is one of the supported values.
func (a Audience) IsValid() bool {
	return a == Student || a == Company || a == University
}

// Role maps the audience to the user role understood by the assistant service.
func (a Audience) Role() string {
	switch a {
	case Company:
		return "recruiter"
	case University:
		return "institution"
	default:
		return "student"
	}
}

// ResultType is the discriminator carried by every search response.
type ResultType string

// Result type constants.
const (
	Jobs       ResultType = "jobs"
	Candidates ResultType = "candidates"
)

// DefaultResultType is the result type reported when no results decide it.
func (a Audience) DefaultResultType() ResultType {
	if a == Company {
		return Candidates
	}
	return Jobs
}
