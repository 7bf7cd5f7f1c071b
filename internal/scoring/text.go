package scoring

import (
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// FullResumeText joins every text field of the résumé with spaces, skipping
// empty values. It is only used for keyword matching.
func FullResumeText(r *types.Resume) string {
	if r == nil {
		return ""
	}

	parts := []string{r.FullName, r.Summary, r.TechnicalSkills, r.SoftSkills, r.Tools}
	for _, exp := range r.Experience {
		parts = append(parts, exp.Title, exp.Company)
		parts = append(parts, exp.Bullets...)
	}
	for _, edu := range r.Education {
		parts = append(parts, edu.Degree, edu.School, edu.Field)
	}
	for _, proj := range r.Projects {
		parts = append(parts, proj.Name, proj.Description, proj.Technologies)
	}

	nonEmpty := parts[:0]
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, " ")
}
