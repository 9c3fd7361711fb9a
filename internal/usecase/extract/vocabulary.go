package extract

import "github.com/intransparency/talentsearch/internal/domain/search/entity"

// cityKeyword maps a spelling found in queries to the canonical display name.
type cityKeyword struct {
	keyword string
	city    string
}

// cities is ordered so extraction order is deterministic.
var cities = []cityKeyword{
	{"milano", "Milan"}, {"milan", "Milan"},
	{"roma", "Rome"}, {"rome", "Rome"},
	{"torino", "Turin"}, {"turin", "Turin"},
	{"firenze", "Florence"}, {"florence", "Florence"},
	{"bologna", "Bologna"},
	{"napoli", "Naples"}, {"naples", "Naples"},
	{"venezia", "Venice"}, {"venice", "Venice"},
	{"padova", "Padova"},
	{"genova", "Genova"},
	{"bari", "Bari"},
	{"palermo", "Palermo"},
}

// jobTypeFamily lists substrings that all imply the same job type.
type jobTypeFamily struct {
	jobType  entity.JobType
	keywords []string
}

var jobTypeFamilies = []jobTypeFamily{
	{entity.Internship, []string{"stage", "tirocinio", "internship", "curriculare"}},
	{entity.FullTime, []string{"full time", "full-time"}},
	{entity.PartTime, []string{"part time", "part-time"}},
	{entity.Contract, []string{"freelance", "contract"}},
}

var skillKeywords = []string{
	// Tech
	"react", "vue", "angular", "javascript", "typescript", "python", "java",
	"node", "figma", "photoshop", "illustrator", "ui", "ux", "design",
	"graphic", "graphics", "cybersecurity", "security", "network", "cloud",
	"aws", "docker", "sql", "database", "devops", "mobile", "ios", "android",
	"flutter", "swift", "kotlin", "machine learning", "deep learning",
	// Business & finance
	"marketing", "seo", "data", "ml", "ai", "excel", "financial",
	"accounting", "legal", "law", "communication", "consulting", "business",
	"analytics", "economics", "management", "entrepreneurship",
	// Sciences & engineering
	"biomedical", "biotechnology", "biology", "chemistry", "physics",
	"pharmaceutical", "medicine", "medical", "nursing", "health",
	"mechanical", "electrical", "civil", "environmental", "aerospace",
	"chemical", "materials", "robotics", "automation", "energy",
	// Architecture & design
	"architecture", "urban", "interior", "industrial design",
	// Humanities & social
	"psychology", "sociology", "philosophy", "literature", "linguistics",
	"political", "international relations", "education", "pedagogy",
}

var institutionKeywords = []string{
	"politecnico", "bocconi", "sapienza", "luiss", "naba", "ied",
	"bologna", "cattolica", "bicocca", "statale",
}

// stopWords are English and Italian filler words skipped by term extraction and
// fuzzy matching.
var stopWords = toSet(
	"i", "we", "you", "want", "to", "find", "the", "a", "an", "in", "for",
	"and", "or", "with", "at", "of", "my", "me", "looking", "search", "show",
	"get", "need", "who", "are", "is", "good", "great", "best", "top", "some",
	"that", "this", "those", "people", "person", "students", "student",
	"graduated", "graduates", "from", "have", "has", "their", "our", "can",
	"voglio", "cerco", "cerca", "trovami", "trova", "mostrami", "per", "con",
	"che", "di", "il", "la", "un", "una", "dei", "delle", "del", "dalla",
	"dal", "le", "lo", "gli", "sono", "da", "su", "come", "mi", "si",
	"hire", "hiring", "jobs", "job", "work", "experience",
)

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
