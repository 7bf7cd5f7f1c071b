// Package scoring rates how well a résumé is likely to pass an applicant tracking
// system for a given set of job keywords.
package scoring

import (
	"regexp"
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/keywords"
	"github.com/jonathan/resume-optimizer/internal/lexicon"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Weights of the sub-scores in the overall score
const (
	keywordsWeight     = 0.35
	formatWeight       = 0.25
	contentWeight      = 0.25
	completenessWeight = 0.15
)

// neutralKeywordScore is returned when there is no job description to match against
const neutralKeywordScore = 70

// metricPattern recognizes quantified impact: numbers, percentages, dollar
// amounts, or counts of users/customers/clients
var metricPattern = regexp.MustCompile(`(?i)\d+%?|\$[\d,]+|[\d,]+\s*(users?|customers?|clients?)`)

// CalculateScore computes the overall ATS score, its breakdown and improvement tips.
// A nil résumé is scored as an empty record.
func CalculateScore(r *types.Resume, ks types.KeywordSet) types.ScoreResult {
	if r == nil {
		r = types.NewResume()
	}

	breakdown := types.Breakdown{
		Keywords:     KeywordScore(r, ks),
		Format:       FormatScore(r),
		Content:      ContentScore(r),
		Completeness: CompletenessScore(r),
	}

	weighted := breakdown.Keywords*keywordsWeight +
		breakdown.Format*formatWeight +
		breakdown.Content*contentWeight +
		breakdown.Completeness*completenessWeight
	overall := clamp(int(weighted), 0, 100)

	return types.ScoreResult{
		Overall:   overall,
		Label:     Label(overall),
		Breakdown: breakdown,
		Tips:      generateTips(breakdown, r),
	}
}

// KeywordScore maps the share of job keywords present in the résumé onto [0, 100].
// The piecewise mapping is discontinuous at 30, 60 and 80 percent.
func KeywordScore(r *types.Resume, ks types.KeywordSet) float64 {
	if len(ks.All) == 0 {
		return neutralKeywordScore
	}

	matches := keywords.FindMatches(FullResumeText(r), ks)
	matchPct := float64(len(matches.Matched)) / float64(len(ks.All)) * 100

	switch {
	case matchPct >= 80:
		return 95
	case matchPct >= 60:
		return 75 + (matchPct - 60)
	case matchPct >= 30:
		return 50 + (matchPct-30)*0.83
	default:
		return matchPct * 1.67
	}
}

// FormatScore deducts points for missing contact details and experience
func FormatScore(r *types.Resume) float64 {
	score := 100.0
	if r.FullName == "" {
		score -= 15
	}
	if r.Email == "" {
		score -= 15
	}
	if r.Phone == "" {
		score -= 5
	}
	if len(r.Experience) == 0 {
		score -= 10
	}
	return max(score, 0)
}

// ContentScore rates bullet quality, summary length and the presence of skills
func ContentScore(r *types.Resume) float64 {
	score := 0.0

	total, good := 0, 0
	for _, exp := range r.Experience {
		for _, bullet := range exp.Bullets {
			total++
			if IsGoodBullet(bullet) {
				good++
			}
		}
	}
	if total > 0 {
		score += float64(good) / float64(total) * 60
	} else {
		score += 30
	}

	summaryLen := utf8.RuneCountInString(r.Summary)
	switch {
	case summaryLen >= 100 && summaryLen <= 500:
		score += 20
	case summaryLen > 50:
		score += 10
	}

	if r.TechnicalSkills != "" || r.SoftSkills != "" {
		score += 20
	}

	return min(score, 100)
}

// completenessWeights lists the fields that make a résumé complete and what each is worth
var completenessWeights = []struct {
	present func(r *types.Resume) bool
	weight  float64
}{
	{func(r *types.Resume) bool { return r.FullName != "" }, 15},
	{func(r *types.Resume) bool { return r.Email != "" }, 15},
	{func(r *types.Resume) bool { return r.Phone != "" }, 5},
	{func(r *types.Resume) bool { return r.Summary != "" }, 15},
	{func(r *types.Resume) bool { return len(r.Experience) > 0 }, 20},
	{func(r *types.Resume) bool { return len(r.Education) > 0 }, 15},
	{func(r *types.Resume) bool { return r.TechnicalSkills != "" }, 10},
	{func(r *types.Resume) bool { return len(r.Projects) > 0 }, 5},
}

// CompletenessScore sums the weights of the sections that are filled in
func CompletenessScore(r *types.Resume) float64 {
	score := 0.0
	for _, section := range completenessWeights {
		if section.present(r) {
			score += section.weight
		}
	}
	return score
}

// IsGoodBullet reports whether a bullet follows the action-verb and metrics
// heuristic. Bullets shorter than 20 characters never qualify.
func IsGoodBullet(bullet string) bool {
	length := utf8.RuneCountInString(bullet)
	if length < 20 {
		return false
	}

	hasActionVerb := lexicon.HasActionVerb(bullet)
	hasMetrics := metricPattern.MatchString(bullet)

	return (hasActionVerb && hasMetrics) || (hasActionVerb && length > 50) || hasMetrics
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
