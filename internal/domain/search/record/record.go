// Package record holds read-only projections of datastore rows and the logical
// field names the query compiler filters on.
package record

import (
	"time"

	"github.com/intransparency/talentsearch/internal/domain/search/predicate"
)

// Posting fields.
const (
	PostingPublic          predicate.Field = "posting.public"
	PostingStatus          predicate.Field = "posting.status"
	PostingJobType         predicate.Field = "posting.jobType"
	PostingLocation        predicate.Field = "posting.location"
	PostingTitle           predicate.Field = "posting.title"
	PostingDescription     predicate.Field = "posting.description"
	PostingRequiredSkills  predicate.Field = "posting.requiredSkills"
	PostingPreferredSkills predicate.Field = "posting.preferredSkills"
	PostingFeatured        predicate.Field = "posting.featured"
	PostingPostedAt        predicate.Field = "posting.postedAt"
)

// Candidate fields.
const (
	CandidateRole          predicate.Field = "candidate.role"
	CandidateProfilePublic predicate.Field = "candidate.profilePublic"
	CandidateUniversity    predicate.Field = "candidate.university"
	CandidateCreatedAt     predicate.Field = "candidate.createdAt"
)

// Project fields, reachable from a candidate through RelationProjects.
const (
	RelationProjects = "projects"

	ProjectPublic       predicate.Field = "project.public"
	ProjectSkills       predicate.Field = "project.skills"
	ProjectTechnologies predicate.Field = "project.technologies"
	ProjectTools        predicate.Field = "project.tools"
)

// Field values used by the base predicates.
const (
	StatusActive = "ACTIVE"
	RoleStudent  = "STUDENT"
)

// Posting is a job posting row.
type Posting struct {
	ID              string
	Title           string
	CompanyName     string
	Location        string
	JobType         string
	SalaryMin       *int
	SalaryMax       *int
	SalaryCurrency  string
	ShowSalary      bool
	RequiredSkills  []string
	PreferredSkills []string
	PostedAt        time.Time
	Featured        bool
}

// Candidate is a public student profile row with its public projects.
type Candidate struct {
	ID         string
	FirstName  string
	LastName   string
	University string
	Degree     string
	GPA        string
	GPAPublic  bool
	CreatedAt  time.Time
	Projects   []Project
}

// Project holds the skill lists of a single public project.
type Project struct {
	Skills       []string
	Technologies []string
	Tools        []string
}
