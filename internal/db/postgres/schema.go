package postgres

import (
	"github.com/intransparency/talentsearch/internal/domain/search/predicate"
	"github.com/intransparency/talentsearch/internal/domain/search/record"
)

// Tables follow the ORM's default naming: PascalCase table names and
// camelCase columns, both quoted.

var projectsTable = &table{
	name:  `"Project"`,
	alias: "p",
	columns: map[predicate.Field]column{
		record.ProjectPublic:       {expr: `p."isPublic"`},
		record.ProjectSkills:       {expr: `p."skills"`},
		record.ProjectTechnologies: {expr: `p."technologies"`},
		record.ProjectTools:        {expr: `p."tools"`},
	},
}

var postingsTable = &table{
	name:  `"Job"`,
	alias: "j",
	columns: map[predicate.Field]column{
		record.PostingPublic:          {expr: `j."isPublic"`},
		record.PostingStatus:          {expr: `j."status"`, enum: true},
		record.PostingJobType:         {expr: `j."jobType"`, enum: true},
		record.PostingLocation:        {expr: `j."location"`},
		record.PostingTitle:           {expr: `j."title"`},
		record.PostingDescription:     {expr: `j."description"`},
		record.PostingRequiredSkills:  {expr: `j."requiredSkills"`},
		record.PostingPreferredSkills: {expr: `j."preferredSkills"`},
		record.PostingFeatured:        {expr: `j."isFeatured"`},
		record.PostingPostedAt:        {expr: `j."postedAt"`},
	},
}

var candidatesTable = &table{
	name:  `"User"`,
	alias: "u",
	columns: map[predicate.Field]column{
		record.CandidateRole:          {expr: `u."role"`, enum: true},
		record.CandidateProfilePublic: {expr: `u."profilePublic"`},
		record.CandidateUniversity:    {expr: `u."university"`},
		record.CandidateCreatedAt:     {expr: `u."createdAt"`},
	},
	relations: map[string]relation{
		record.RelationProjects: {table: projectsTable, join: `p."userId" = u."id"`},
	},
}

var postingColumns = []string{
	`j."id"`, `j."title"`, `j."companyName"`, `j."location"`, `j."jobType"::text`,
	`j."salaryMin"`, `j."salaryMax"`, `j."salaryCurrency"`, `j."showSalary"`,
	`j."requiredSkills"`, `j."preferredSkills"`, `j."postedAt"`, `j."isFeatured"`,
}

var candidateColumns = []string{
	`u."id"`, `u."firstName"`, `u."lastName"`, `u."university"`, `u."degree"`,
	`u."gpa"::text`, `u."gpaPublic"`, `u."createdAt"`,
}

// maxProjectsPerCandidate caps the public projects aggregated into a candidate's skills.
const maxProjectsPerCandidate = 5

// projectsQuery loads public projects for a page of candidates, newest first per user.
const projectsQuery = `SELECT "userId", "skills", "technologies", "tools"
FROM (
	SELECT p."userId", p."skills", p."technologies", p."tools",
		row_number() OVER (PARTITION BY p."userId" ORDER BY p."createdAt" DESC, p."id") AS rn
	FROM "Project" p
	WHERE p."isPublic" = TRUE AND p."userId" = ANY($1)
) ranked
WHERE rn <= $2`
