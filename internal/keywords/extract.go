// Package keywords extracts categorized skill keywords from job descriptions
// and matches them against résumé text.
//
// Matching is a plain case-insensitive substring test with no word
// boundaries, so short terms produce false positives ("go" in "mango").
// Recall is preferred over precision here.
package keywords

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/lexicon"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// maxSuggestions caps the number of skill suggestions returned
const maxSuggestions = 10

// experiencePatterns capture the number of years in phrases like
// "5+ years of experience" and "experience of 3 years".
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`),
	regexp.MustCompile(`(?i)(?:experience|exp)\s*(?:of\s*)?(\d+)\+?\s*(?:years?|yrs?)`),
}

// Extract builds a KeywordSet from a job description
func Extract(jobDescription string) types.KeywordSet {
	extracted := types.NewKeywordSet()
	if jobDescription == "" {
		return extracted
	}

	text := strings.ToLower(jobDescription)

	for _, term := range lexicon.TechnicalTerms() {
		extracted.Technical = appendMatch(extracted.Technical, text, term)
	}

	for _, term := range lexicon.SoftSkillTerms() {
		extracted.Soft = appendMatch(extracted.Soft, text, term)
	}

	for _, pattern := range experiencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(jobDescription, -1) {
			extracted.ExperienceYears = append(extracted.ExperienceYears, match[1])
		}
	}

	extracted.All = union(extracted.Technical, extracted.Soft, extracted.Requirements)

	return extracted
}

// appendMatch appends the normalized term when text contains it and the
// normalized form is not already present
func appendMatch(found []string, text, term string) []string {
	if !strings.Contains(text, term) {
		return found
	}

	normalized := lexicon.NormalizeSkill(term)
	for _, existing := range found {
		if existing == normalized {
			return found
		}
	}
	return append(found, normalized)
}

// union concatenates the lists and drops duplicates, keeping first occurrence
func union(lists ...[]string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, list := range lists {
		for _, item := range list {
			if seen[item] {
				continue
			}
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
