package keywords

import (
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// FindMatches partitions the keyword set into keywords contained in the
// résumé text and keywords missing from it
func FindMatches(resumeText string, keywordSet types.KeywordSet) types.MatchResult {
	result := types.MatchResult{
		Matched: []string{},
		Missing: []string{},
	}
	if resumeText == "" || keywordSet.IsEmpty() {
		return result
	}

	resumeLower := strings.ToLower(resumeText)
	for _, keyword := range keywordSet.All {
		if strings.Contains(resumeLower, strings.ToLower(keyword)) {
			result.Matched = append(result.Matched, keyword)
		} else {
			result.Missing = append(result.Missing, keyword)
		}
	}

	return result
}

// Suggestions returns job keywords, technical first, that are not listed in
// the résumé's skills. Comparison is exact after lower-casing. At most
// maxSuggestions entries are returned.
func Suggestions(resumeSkills []string, keywordSet types.KeywordSet) []types.Suggestion {
	have := make(map[string]bool, len(resumeSkills))
	for _, skill := range resumeSkills {
		have[strings.ToLower(skill)] = true
	}

	technical := make(map[string]bool, len(keywordSet.Technical))
	for _, skill := range keywordSet.Technical {
		technical[skill] = true
	}

	suggestions := make([]types.Suggestion, 0)
	candidates := append(append([]string{}, keywordSet.Technical...), keywordSet.Soft...)
	for _, skill := range candidates {
		if have[strings.ToLower(skill)] {
			continue
		}

		skillType := types.SkillTypeSoft
		if technical[skill] {
			skillType = types.SkillTypeTechnical
		}
		suggestions = append(suggestions, types.Suggestion{
			Skill:    skill,
			Type:     skillType,
			Priority: types.PriorityHigh,
		})
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
