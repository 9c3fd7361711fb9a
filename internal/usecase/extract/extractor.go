// Package extract is the deterministic, vocabulary-based entity extractor used
// when the assistant service is unavailable or returns nothing usable.
//
// It is a coarse recall-oriented filter, not a parser: independent substring
// scans with no ranking, stemming or negation handling. False positives are
// tolerated because compiled filters are additive; misses only widen the search.
package extract

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/intransparency/talentsearch/internal/domain/search/entity"
)

const (
	// fuzzyMinWordLen is the shortest query word considered for fuzzy matching.
	fuzzyMinWordLen = 4
	// fuzzyMaxDistance is the largest edit distance accepted as a fuzzy match.
	fuzzyMaxDistance = 2
	// fuzzyMaxLenDiff skips keywords whose length differs too much from the word.
	fuzzyMaxLenDiff = 2
	// minTermLen is the shortest token kept by SearchTerms.
	minTermLen = 3
)

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Extract maps a free-text query to an entity set using fixed vocabularies.
func Extract(query string) entity.Set {
	lower := strings.ToLower(query)

	var locations []string
	for _, c := range cities {
		if strings.Contains(lower, c.keyword) {
			locations = append(locations, c.city)
		}
	}

	var jobTypes []string
	for _, f := range jobTypeFamilies {
		for _, kw := range f.keywords {
			if strings.Contains(lower, kw) {
				jobTypes = append(jobTypes, string(f.jobType))
				break
			}
		}
	}

	var skills []string
	matched := make(map[string]struct{})
	for _, kw := range skillKeywords {
		if strings.Contains(lower, kw) {
			skills = append(skills, kw)
			matched[kw] = struct{}{}
		}
	}
	skills = append(skills, fuzzySkills(lower, matched)...)

	var universities []string
	for _, kw := range institutionKeywords {
		if strings.Contains(lower, kw) {
			universities = append(universities, kw)
		}
	}

	return entity.New(skills, locations, jobTypes, universities)
}

// fuzzySkills matches misspelled query words (e.g. "pyhton") to the closest skill
// keyword. Words already matched exactly, stop words and words that belong to
// another vocabulary are skipped.
func fuzzySkills(lower string, matched map[string]struct{}) []string {
	var out []string
	for _, word := range strings.Fields(nonWord.ReplaceAllString(lower, " ")) {
		if len(word) < fuzzyMinWordLen {
			continue
		}
		if _, ok := matched[word]; ok {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		if isVocabularyWord(word) {
			continue
		}
		kw, ok := closestSkill(word)
		if !ok {
			continue
		}
		if _, dup := matched[kw]; dup {
			continue
		}
		matched[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

func closestSkill(word string) (string, bool) {
	best := ""
	bestDist := fuzzyMaxDistance + 1
	for _, kw := range skillKeywords {
		diff := len(word) - len(kw)
		if diff < -fuzzyMaxLenDiff || diff > fuzzyMaxLenDiff {
			continue
		}
		if d := levenshtein.ComputeDistance(word, kw); d < bestDist {
			bestDist = d
			best = kw
		}
	}
	return best, best != ""
}

func isVocabularyWord(word string) bool {
	for _, c := range cities {
		if c.keyword == word {
			return true
		}
	}
	for _, f := range jobTypeFamilies {
		for _, kw := range f.keywords {
			if kw == word {
				return true
			}
		}
	}
	for _, kw := range institutionKeywords {
		if kw == word {
			return true
		}
	}
	return false
}

// SearchTerms returns the meaningful tokens of a query: lower-cased words of at
// least three characters that are not stop words, in query order.
func SearchTerms(query string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(query), " ")
	var terms []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) < minTermLen {
			continue
		}
		if _, ok := stopWords[w]; ok {
			continue
		}
		terms = append(terms, w)
	}
	return terms
}

var followUpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[?!.…]+$`),
	regexp.MustCompile(`(?i)^(yes|no|ok|sure|thanks|thank|grazie|si|sì|va bene)[\s?!.]*$`),
	regexp.MustCompile(`(?i)^(are you sure|sei sicuro|really|davvero|what|cosa|why|perché|how|come)[\s?!.]*$`),
	regexp.MustCompile(`(?i)^(show me more|more|altro|altri|di più|tell me more)[\s?!.]*$`),
	regexp.MustCompile(`(?i)^(they don.?t match|not what i|non è quello|wrong|sbagliato)[\s?!.]*$`),
}

// IsFollowUp reports whether a query is conversational ("ok", "grazie",
// "show me more") rather than a search. Such queries only make sense to the
// assistant service, which keeps conversation state.
func IsFollowUp(query string) bool {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) <= 2 {
		return true
	}
	if len(strings.Fields(trimmed)) <= 2 && len(SearchTerms(trimmed)) == 0 {
		return true
	}
	for _, p := range followUpPatterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// Extractor adapts Extract to the classification fallback contract.
type Extractor struct{}

// Extract implements the fallback branch of classification.
func (Extractor) Extract(query string) entity.Set { return Extract(query) }
