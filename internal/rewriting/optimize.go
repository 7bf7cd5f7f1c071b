// Package rewriting tailors a résumé to a job's keywords and records every edit it makes.
package rewriting

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/lexicon"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Limits on how much the optimizer adds in one pass
const (
	summaryKeywordWindow = 3
	maxTechnicalAdded    = 5
	maxSoftAdded         = 3
	minVerbBulletLength  = 20
)

// Section names used in the change log
const (
	sectionSummary    = "Summary"
	sectionExperience = "Experience"
	sectionSkills     = "Skills"
)

// now is replaced in tests
var now = time.Now

// Optimize rewrites a deep copy of r for the keyword set: the summary gains
// missing technical keywords, bullets gain an action verb and punctuation, and
// missing skills are appended. r itself is never modified.
func Optimize(r *types.Resume, ks types.KeywordSet) *types.OptimizedResume {
	optimized := r.Clone()
	changes := make([]types.Change, 0)

	if optimized.Summary != "" && len(ks.Technical) > 0 {
		summary, change := optimizeSummary(optimized.Summary, ks.Technical)
		optimized.Summary = summary
		if change != nil {
			changes = append(changes, *change)
		}
	}

	for i := range optimized.Experience {
		if len(optimized.Experience[i].Bullets) == 0 {
			continue
		}
		bullets, bulletChanges := optimizeBullets(optimized.Experience[i].Bullets)
		optimized.Experience[i].Bullets = bullets
		changes = append(changes, bulletChanges...)
	}

	technical, soft, skillChanges := optimizeSkills(optimized.TechnicalSkills, optimized.SoftSkills, ks)
	optimized.TechnicalSkills = technical
	optimized.SoftSkills = soft
	changes = append(changes, skillChanges...)

	return &types.OptimizedResume{
		Resume:      *optimized,
		Changes:     changes,
		OptimizedAt: now().UTC(),
	}
}

// optimizeSummary appends the leading technical keywords the summary does not
// mention yet. Only the first summaryKeywordWindow keywords are considered.
func optimizeSummary(summary string, technical []string) (string, *types.Change) {
	window := technical[:min(len(technical), summaryKeywordWindow)]
	missing := missingFrom(summary, window)
	if len(missing) == 0 {
		return summary, nil
	}

	phrase := strings.Join(missing, ", ")
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	summary += fmt.Sprintf(" Proficient in %s.", phrase)

	return summary, &types.Change{
		Type:     types.ChangeAdded,
		Section:  sectionSummary,
		Text:     "Added skills: " + phrase,
		Keywords: missing,
	}
}

// optimizeBullets drops blank bullets, opens long bullets with an action verb
// when they lack one, capitalizes them and terminates them with a period
func optimizeBullets(bullets []string) ([]string, []types.Change) {
	out := make([]string, 0, len(bullets))
	var changes []types.Change

	for _, bullet := range bullets {
		text := strings.TrimSpace(bullet)
		if text == "" {
			continue
		}

		if !lexicon.HasActionVerb(text) && utf8.RuneCountInString(text) > minVerbBulletLength {
			verb := SelectActionVerb(text)
			text = verb + " " + lowerFirst(text)
			changes = append(changes, types.Change{
				Type:     types.ChangeImproved,
				Section:  sectionExperience,
				Text:     fmt.Sprintf("Added action verb %q", verb),
				Keywords: []string{verb},
			})
		}

		text = upperFirst(text)
		if !strings.HasSuffix(text, ".") {
			text += "."
		}
		out = append(out, text)
	}

	return out, changes
}

// optimizeSkills appends missing technical and soft keywords to the
// comma-joined skill strings. Keywords already contained in the existing
// string, case-insensitively, are skipped, so a second pass adds nothing.
func optimizeSkills(technical, soft string, ks types.KeywordSet) (string, string, []types.Change) {
	var changes []types.Change

	if missing := missingFrom(technical, ks.Technical); len(missing) > 0 {
		missing = missing[:min(len(missing), maxTechnicalAdded)]
		toAdd := strings.Join(missing, ", ")
		technical = appendList(technical, toAdd)
		changes = append(changes, types.Change{
			Type:     types.ChangeAdded,
			Section:  sectionSkills,
			Text:     "Added missing skills: " + toAdd,
			Keywords: missing,
		})
	}

	if missing := missingFrom(soft, ks.Soft); len(missing) > 0 {
		missing = missing[:min(len(missing), maxSoftAdded)]
		toAdd := strings.Join(missing, ", ")
		soft = appendList(soft, toAdd)
		changes = append(changes, types.Change{
			Type:     types.ChangeAdded,
			Section:  sectionSkills,
			Text:     "Added soft skills: " + toAdd,
			Keywords: missing,
		})
	}

	return technical, soft, changes
}

// SelectActionVerb picks the verb that should open a bullet about text
func SelectActionVerb(text string) string {
	return lexicon.ActionVerbFor(text)
}

// missingFrom returns the keywords not contained in text, case-insensitively, in order
func missingFrom(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	missing := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			missing = append(missing, kw)
		}
	}
	return missing
}

func appendList(list, items string) string {
	if list == "" {
		return items
	}
	return list + ", " + items
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
