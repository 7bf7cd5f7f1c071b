// Package parsing converts raw résumé text into a structured record.
//
// Parsing is a best-effort, single-pass heuristic over lines. Lines that do
// not fit the current section are dropped rather than reported, so the
// result can lose information but never fails.
package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// section identifies which part of the résumé the parser is in
type section int

const (
	sectionHeader section = iota
	sectionSummary
	sectionExperience
	sectionEducation
	sectionSkills
	sectionProjects
)

// maxHeaderLength is the exclusive upper bound on the length of a section
// header line and of a name line
const maxHeaderLength = 50

// sectionKeywords is checked in order; the first keyword found in a short
// line switches the parser to that section
var sectionKeywords = []struct {
	keyword string
	section section
}{
	{"experience", sectionExperience},
	{"work", sectionExperience},
	{"education", sectionEducation},
	{"skills", sectionSkills},
	{"technical", sectionSkills},
	{"projects", sectionProjects},
	{"summary", sectionSummary},
	{"objective", sectionSummary},
}

var titleKeywords = []string{"engineer", "developer", "manager", "director", "analyst", "designer", "lead", "senior"}

var degreeKeywords = []string{"bachelor", "master", "ph.d", "b.s", "m.s", "mba", "associate"}

var (
	emailPattern      = regexp.MustCompile(`[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+`)
	phonePattern      = regexp.MustCompile(`\+?[\d\s\-()]{10,}`)
	nonLetterPattern  = regexp.MustCompile(`[^a-z\s]`)
	numberedPattern   = regexp.MustCompile(`^\d+\.`)
	// only the leading marker is removed; numbers inside the bullet are kept
	bulletMarkPattern = regexp.MustCompile(`^(?:[•\-*]\s*|\d+\.\s*)`)
)

// ParseText parses résumé text into a structured record. RawText holds the
// input unchanged.
func ParseText(text string) *types.Resume {
	parsed := types.NewResume()
	parsed.RawText = text

	current := sectionHeader
	for _, line := range splitLines(text) {
		if next, ok := detectSection(line); ok {
			current = next
			continue
		}

		switch current {
		case sectionHeader:
			parseHeaderLine(line, parsed)
		case sectionSummary:
			parsed.Summary = joinNonEmpty(parsed.Summary, line, " ")
		case sectionExperience:
			parseExperienceLine(line, parsed)
		case sectionEducation:
			parseEducationLine(line, parsed)
		case sectionSkills:
			parsed.TechnicalSkills = joinNonEmpty(parsed.TechnicalSkills, line, ", ")
		case sectionProjects:
			// project lines are recognized as a section but not extracted
		}
	}

	return parsed
}

// splitLines returns the trimmed, non-empty lines of text in order
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// detectSection reports whether line is a section header and which section it opens
func detectSection(line string) (section, bool) {
	if utf8.RuneCountInString(line) >= maxHeaderLength {
		return sectionHeader, false
	}

	letters := nonLetterPattern.ReplaceAllString(strings.ToLower(line), "")
	for _, sk := range sectionKeywords {
		if strings.Contains(letters, sk.keyword) {
			return sk.section, true
		}
	}
	return sectionHeader, false
}

// parseHeaderLine extracts contact details. The first matching rule wins.
func parseHeaderLine(line string, parsed *types.Resume) {
	if email := emailPattern.FindString(line); email != "" {
		parsed.Email = email
		return
	}

	if phone := phonePattern.FindString(line); phone != "" {
		parsed.Phone = strings.TrimSpace(phone)
		return
	}

	if parsed.FullName != "" || strings.Contains(line, "@") || strings.Contains(strings.ToLower(line), "linkedin") {
		return
	}

	if n := utf8.RuneCountInString(line); n > 2 && n < maxHeaderLength {
		parsed.FullName = line
	}
}

// parseExperienceLine appends bullets to the latest position or starts a new
// position when the line looks like a job title
func parseExperienceLine(line string, parsed *types.Resume) {
	if isBulletLine(line) {
		if len(parsed.Experience) == 0 {
			return
		}
		last := &parsed.Experience[len(parsed.Experience)-1]
		last.Bullets = append(last.Bullets, bulletMarkPattern.ReplaceAllString(line, ""))
		return
	}

	lower := strings.ToLower(line)
	if !containsAny(lower, titleKeywords) {
		return
	}

	parts := strings.Split(line, "|")
	exp := types.Experience{
		Title:   strings.TrimSpace(parts[0]),
		Bullets: []string{},
	}
	if len(parts) > 1 {
		exp.Company = strings.TrimSpace(parts[1])
	}
	parsed.Experience = append(parsed.Experience, exp)
}

// parseEducationLine records lines that mention a degree
func parseEducationLine(line string, parsed *types.Resume) {
	if !containsAny(strings.ToLower(line), degreeKeywords) {
		return
	}
	parsed.Education = append(parsed.Education, types.Education{Degree: line})
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") ||
		strings.HasPrefix(line, "*") || numberedPattern.MatchString(line)
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func joinNonEmpty(existing, addition, sep string) string {
	if existing == "" {
		return addition
	}
	return existing + sep + addition
}
