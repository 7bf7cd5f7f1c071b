package scoring

import "github.com/jonathan/resume-optimizer/internal/types"

// scoreLabels maps score floors to display labels, highest first
var scoreLabels = []struct {
	floor int
	label string
}{
	{90, "Excellent"},
	{80, "Great"},
	{70, "Good"},
	{60, "Fair"},
	{50, "Needs Work"},
}

// Label returns the display label for an overall score
func Label(score int) string {
	for _, l := range scoreLabels {
		if score >= l.floor {
			return l.label
		}
	}
	return "Poor"
}

// Compare summarizes how an optimization moved the score. Added keywords come
// from "added" changes only; the verbs of "improved" changes are not keywords.
func Compare(before, after types.ScoreResult, changes []types.Change) types.Comparison {
	cmp := types.Comparison{
		BeforeScore:     before.Overall,
		AfterScore:      after.Overall,
		Delta:           after.Overall - before.Overall,
		Improvements:    append([]types.Change{}, changes...),
		AddedKeywords:   []string{},
		ChangedSections: []string{},
	}

	seenKeyword := make(map[string]bool)
	seenSection := make(map[string]bool)
	for _, change := range changes {
		if !seenSection[change.Section] {
			seenSection[change.Section] = true
			cmp.ChangedSections = append(cmp.ChangedSections, change.Section)
		}
		if change.Type != types.ChangeAdded {
			continue
		}
		for _, kw := range change.Keywords {
			if !seenKeyword[kw] {
				seenKeyword[kw] = true
				cmp.AddedKeywords = append(cmp.AddedKeywords, kw)
			}
		}
	}
	return cmp
}
