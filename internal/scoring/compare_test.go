package scoring

import (
	"testing"

	"github.com/jonathan/resume-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Excellent"},
		{90, "Excellent"},
		{89, "Great"},
		{80, "Great"},
		{79, "Good"},
		{70, "Good"},
		{69, "Fair"},
		{60, "Fair"},
		{59, "Needs Work"},
		{50, "Needs Work"},
		{49, "Poor"},
		{0, "Poor"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.score))
		})
	}
}

func TestCompare(t *testing.T) {
	changes := []types.Change{
		{Type: types.ChangeAdded, Section: "Summary", Text: "Added skills: Python, Docker", Keywords: []string{"Python", "Docker"}},
		{Type: types.ChangeImproved, Section: "Experience", Text: `Added action verb "Led"`, Keywords: []string{"Led"}},
		{Type: types.ChangeImproved, Section: "Experience", Text: `Added action verb "Executed"`, Keywords: []string{"Executed"}},
		{Type: types.ChangeAdded, Section: "Skills", Text: "Added missing skills: Python, AWS", Keywords: []string{"Python", "AWS"}},
	}

	cmp := Compare(types.ScoreResult{Overall: 61}, types.ScoreResult{Overall: 78}, changes)

	assert.Equal(t, 61, cmp.BeforeScore)
	assert.Equal(t, 78, cmp.AfterScore)
	assert.Equal(t, 17, cmp.Delta)
	assert.Equal(t, changes, cmp.Improvements)
	assert.Equal(t, []string{"Python", "Docker", "AWS"}, cmp.AddedKeywords)
	assert.Equal(t, []string{"Summary", "Experience", "Skills"}, cmp.ChangedSections)
}

func TestCompare_NoChanges(t *testing.T) {
	cmp := Compare(types.ScoreResult{Overall: 50}, types.ScoreResult{Overall: 50}, nil)

	assert.Equal(t, 0, cmp.Delta)
	assert.NotNil(t, cmp.Improvements)
	assert.Empty(t, cmp.Improvements)
	assert.NotNil(t, cmp.AddedKeywords)
	assert.NotNil(t, cmp.ChangedSections)
}
