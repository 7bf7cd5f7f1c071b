package db

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// DefaultListLimit caps ListAnalyses when no limit is given
const DefaultListLimit = 50

// Analysis is the stored summary of one optimization: the job keywords, the
// scores before and after, and the change log
type Analysis struct {
	ID           uuid.UUID         `json:"id"`
	KeywordsHash string            `json:"keywordsHash"`
	Keywords     types.KeywordSet  `json:"keywords"`
	BeforeScore  types.ScoreResult `json:"beforeScore"`
	AfterScore   types.ScoreResult `json:"afterScore"`
	Changes      []types.Change    `json:"changes"`
	Delta        int               `json:"delta"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// AnalysisInput contains the fields needed to record an analysis
type AnalysisInput struct {
	Keywords    types.KeywordSet
	BeforeScore types.ScoreResult
	AfterScore  types.ScoreResult
	Changes     []types.Change
}

// HashKeywords computes a stable SHA256 hex digest of a keyword set, so
// analyses against the same job can be grouped
func HashKeywords(ks types.KeywordSet) string {
	// Marshaling a struct of string slices cannot fail
	raw, _ := json.Marshal(ks)
	hash := sha256.Sum256(raw)
	return hex.EncodeToString(hash[:])
}
