package scoring

import (
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/types"
)

const maxTips = 5

// Tip categories
const (
	tipKeywords = "keywords"
	tipFormat   = "format"
	tipContent  = "content"
)

// generateTips applies the improvement rules in a fixed order
func generateTips(breakdown types.Breakdown, r *types.Resume) []types.Tip {
	tips := make([]types.Tip, 0, 4)

	if breakdown.Keywords < 60 {
		tips = append(tips, types.Tip{Type: tipKeywords, Priority: types.PriorityHigh, Text: "Add more keywords from the job description"})
	}
	if r.Phone == "" {
		tips = append(tips, types.Tip{Type: tipFormat, Priority: types.PriorityMedium, Text: "Add a phone number"})
	}
	if breakdown.Content < 70 {
		tips = append(tips, types.Tip{Type: tipContent, Priority: types.PriorityHigh, Text: "Use action verbs and include measurable achievements"})
	}
	if utf8.RuneCountInString(r.Summary) < 50 {
		tips = append(tips, types.Tip{Type: tipContent, Priority: types.PriorityMedium, Text: "Add a professional summary"})
	}

	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}
