// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, ending in "..." when cut
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// writeList writes a labelled, comma-joined list, or nothing when empty
func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(items)))
	count := min(len(items), maxItemsToShow*2)
	sb.WriteString("  " + truncate(strings.Join(items[:count], ", "), boxWidth-6) + "\n")
	if len(items) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-count))
	}
}

// PrintKeywords outputs the extracted keyword categories.
func (p *Printer) PrintKeywords(ks types.KeywordSet) {
	if ks.IsEmpty() && len(ks.ExperienceYears) == 0 {
		p.printBox("EXTRACTED KEYWORDS", "No keywords found")
		return
	}

	var sb strings.Builder
	writeList(&sb, "Technical", ks.Technical)
	writeList(&sb, "Soft skills", ks.Soft)
	if len(ks.ExperienceYears) > 0 {
		sb.WriteString(fmt.Sprintf("Years of experience: %s\n", strings.Join(ks.ExperienceYears, ", ")))
	}

	p.printBox("EXTRACTED KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScore outputs the overall score, the four sub-scores and the tips.
func (p *Printer) PrintScore(score types.ScoreResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Overall:       %d/100 (%s)\n", score.Overall, score.Label))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Keywords:      %5.1f\n", score.Breakdown.Keywords))
	sb.WriteString(fmt.Sprintf("Format:        %5.1f\n", score.Breakdown.Format))
	sb.WriteString(fmt.Sprintf("Content:       %5.1f\n", score.Breakdown.Content))
	sb.WriteString(fmt.Sprintf("Completeness:  %5.1f\n", score.Breakdown.Completeness))

	if len(score.Tips) > 0 {
		sb.WriteString("\nTips:\n")
		for _, tip := range score.Tips {
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", tip.Priority, tip.Text))
		}
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResume outputs a summary of a parsed résumé.
func (p *Printer) PrintResume(r *types.Resume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", r.FullName))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", r.Email))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", r.Phone))
	sb.WriteString("\n")

	if len(r.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(r.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := r.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", exp.Title))
			if exp.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", exp.Company))
			}
			sb.WriteString(fmt.Sprintf(" (%d bullets)\n", len(exp.Bullets)))
		}
		if len(r.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Experience)-maxItemsToShow))
		}
	}

	if len(r.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, edu := range r.Education {
			sb.WriteString(fmt.Sprintf("  • %s\n", edu.Degree))
		}
	}

	if r.TechnicalSkills != "" {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", r.TechnicalSkills))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintChanges outputs the optimizer's change log.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintChanges(changes []types.Change) {
	if len(changes) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO CHANGES NEEDED", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applied %d changes:\n\n", len(changes)))

	for i, c := range changes {
		marker := "+"
		if c.Type == types.ChangeImproved {
			marker = "~"
		}
		sb.WriteString(fmt.Sprintf("%s [%s] %s", marker, c.Section, c.Text))
		if i < len(changes)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CHANGES", sb.String())
}

// PrintComparison outputs the before and after scores of an optimization.
func (p *Printer) PrintComparison(cmp types.Comparison) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Before:   %d\n", cmp.BeforeScore))
	sb.WriteString(fmt.Sprintf("After:    %d\n", cmp.AfterScore))
	sb.WriteString(fmt.Sprintf("Delta:    %+d\n", cmp.Delta))
	if len(cmp.ChangedSections) > 0 {
		sb.WriteString(fmt.Sprintf("Sections: %s\n", strings.Join(cmp.ChangedSections, ", ")))
	}
	writeList(&sb, "Added keywords", cmp.AddedKeywords)

	p.printBox("SCORE COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs the skills the résumé is missing.
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		p.printBox("SKILL SUGGESTIONS", "Your skills already cover this job")
		return
	}

	var sb strings.Builder
	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("• %-30s %s", s.Skill, s.Type))
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SKILL SUGGESTIONS", sb.String())
}

// PrintMatches outputs which job keywords the résumé covers.
func (p *Printer) PrintMatches(m types.MatchResult) {
	var sb strings.Builder
	total := len(m.Matched) + len(m.Missing)
	if total > 0 {
		sb.WriteString(fmt.Sprintf("Coverage: %d/%d (%.0f%%)\n", len(m.Matched), total, float64(len(m.Matched))/float64(total)*100))
	}
	writeList(&sb, "Matched", m.Matched)
	writeList(&sb, "Missing", m.Missing)

	content := strings.TrimSuffix(sb.String(), "\n")
	if content == "" {
		content = "No keywords to match"
	}
	p.printBox("KEYWORD MATCHES", content)
}

// PrintProgress writes a single progress line for a pipeline step.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(step, message string) {
	fmt.Fprintf(p.out, "[%s] %s\n", step, message)
}
