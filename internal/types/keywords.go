//nolint:revive // types is a standard Go package name pattern
package types

// KeywordSet is the categorized keyword collection extracted from a job description.
// Technical and Soft hold normalized display forms in discovery order.
type KeywordSet struct {
	Technical    []string `json:"technical"`
	Soft         []string `json:"soft"`
	Requirements []string `json:"requirements"` // reserved, no extraction rule populates it
	// ExperienceYears holds the digit groups captured by the "N years experience"
	// patterns, as strings and not deduplicated.
	ExperienceYears []string `json:"experience"`
	Education       []string `json:"education"` // reserved
	All             []string `json:"all"`
}

// NewKeywordSet returns a KeywordSet with every category empty but non-nil
func NewKeywordSet() KeywordSet {
	return KeywordSet{
		Technical:       []string{},
		Soft:            []string{},
		Requirements:    []string{},
		ExperienceYears: []string{},
		Education:       []string{},
		All:             []string{},
	}
}

// IsEmpty reports whether there are no keywords to match against
func (k KeywordSet) IsEmpty() bool {
	return len(k.All) == 0
}

// MatchResult partitions a keyword set into keywords found and not found in a text
type MatchResult struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// Suggestion is a skill from the job description that the résumé does not list
type Suggestion struct {
	Skill    string `json:"skill"`
	Type     string `json:"type"` // technical or soft
	Priority string `json:"priority"`
}

// Suggestion types
const (
	SkillTypeTechnical = "technical"
	SkillTypeSoft      = "soft"
)
