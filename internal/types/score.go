//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// ScoreResult is the ATS compatibility score of a résumé against a keyword set
type ScoreResult struct {
	Overall   int       `json:"overall"`
	Label     string    `json:"label"`
	Breakdown Breakdown `json:"breakdown"`
	Tips      []Tip     `json:"tips"`
}

// Breakdown holds the four independently computed sub-scores, each in [0, 100]
type Breakdown struct {
	Keywords     float64 `json:"keywords"`
	Format       float64 `json:"format"`
	Content      float64 `json:"content"`
	Completeness float64 `json:"completeness"`
}

// Tip is an improvement suggestion attached to a score
type Tip struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Text     string `json:"text"`
}

// Tip priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Change is one entry of the optimizer's change log
type Change struct {
	Type     string   `json:"type"` // added or improved
	Section  string   `json:"section"`
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
}

// Change types
const (
	ChangeAdded    = "added"
	ChangeImproved = "improved"
)

// OptimizedResume is a rewritten résumé together with the edits that produced it
type OptimizedResume struct {
	Resume
	Changes     []Change  `json:"changes"`
	OptimizedAt time.Time `json:"optimizedAt"`
}

// Variation is one of several alternative optimizations of the same résumé
type Variation struct {
	*OptimizedResume
	VariationIndex int         `json:"variationIndex"`
	Score          ScoreResult `json:"score"`
}

// Comparison summarizes the effect of an optimization
type Comparison struct {
	BeforeScore     int      `json:"beforeScore"`
	AfterScore      int      `json:"afterScore"`
	Delta           int      `json:"delta"`
	Improvements    []Change `json:"improvements"`
	AddedKeywords   []string `json:"addedKeywords"`
	ChangedSections []string `json:"changedSections"`
}

// OptimizeResponse is the boundary result of optimizing a résumé.
// Score is computed on the optimized record.
type OptimizeResponse struct {
	OptimizedResume *OptimizedResume `json:"optimizedResume"`
	Score           ScoreResult      `json:"score"`
	Comparison      Comparison       `json:"comparison"`
	AnalysisID      *uuid.UUID       `json:"analysisId,omitempty"`
}
