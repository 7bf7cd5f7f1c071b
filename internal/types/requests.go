//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// ExtractKeywordsRequest is the body of POST /api/extract-keywords.
// An empty job description is valid and yields an empty keyword set.
type ExtractKeywordsRequest struct {
	JobDescription string `json:"jobDescription" validate:"max=200000"`
}

// ScoreRequest is the body of the score, optimize and match endpoints.
// A missing résumé is treated as an empty record.
type ScoreRequest struct {
	ResumeData  *Resume    `json:"resumeData"`
	JobKeywords KeywordSet `json:"jobKeywords"`
}

// VariationsRequest is the body of POST /api/resume-variations.
// A zero count selects the default number of variations.
type VariationsRequest struct {
	ResumeData  *Resume    `json:"resumeData"`
	JobKeywords KeywordSet `json:"jobKeywords"`
	Count       int        `json:"count" validate:"min=0,max=10"`
}

// ParseTextRequest is the body of POST /api/parse-text
type ParseTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// SuggestionsRequest is the body of POST /api/suggestions
type SuggestionsRequest struct {
	ResumeSkills []string   `json:"resumeSkills" validate:"max=500"`
	JobKeywords  KeywordSet `json:"jobKeywords"`
}

// Validate validates the ExtractKeywordsRequest using the validator.
func (r *ExtractKeywordsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ParseTextRequest using the validator.
func (r *ParseTextRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SuggestionsRequest using the validator.
func (r *SuggestionsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the VariationsRequest using the validator.
func (r *VariationsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ResumeOrEmpty returns the request résumé, or an empty record when absent
func (r *VariationsRequest) ResumeOrEmpty() *Resume {
	if r.ResumeData == nil {
		return NewResume()
	}
	return r.ResumeData
}

// ResumeOrEmpty returns the request résumé, or an empty record when absent
func (r *ScoreRequest) ResumeOrEmpty() *Resume {
	if r.ResumeData == nil {
		return NewResume()
	}
	return r.ResumeData
}
