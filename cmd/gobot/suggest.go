package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/types"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "List job skills the résumé is missing",
	Long:  "Compare a résumé with a job's keywords and print the keyword coverage and the skills worth adding.",
	RunE:  runSuggest,
}

var (
	suggestResumeFile string
	suggestJob        jobSource
	suggestUseBrowser bool
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestResumeFile, "resume", "r", "", "Path to résumé (json, pdf, docx, doc or txt)")
	addJobSourceFlags(suggestCmd, &suggestJob, &suggestUseBrowser)
	rootCmd.AddCommand(suggestCmd)
}

// suggestOutput is the JSON printed by the suggest command
type suggestOutput struct {
	Matches     types.MatchResult  `json:"matches"`
	Suggestions []types.Suggestion `json:"suggestions"`
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	analyzer, closers, err := buildAnalyzer(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer runClosers(closers)

	r, err := loadResume(analyzer, suggestResumeFile)
	if err != nil {
		return err
	}
	p := printer(cmd, cfg)
	ks, err := loadKeywords(ctx, analyzer, suggestJob, suggestUseBrowser || cfg.UseBrowser, p)
	if err != nil {
		return err
	}

	out := suggestOutput{
		Matches:     analyzer.Matches(r, ks),
		Suggestions: analyzer.Suggestions(resumeSkills(r), ks),
	}
	if p != nil {
		p.PrintMatches(out.Matches)
		p.PrintSuggestions(out.Suggestions)
	}
	return writeJSON(cmd.OutOrStdout(), "", out)
}

// resumeSkills splits the comma-joined skill fields into individual skills
func resumeSkills(r *types.Resume) []string {
	var skills []string
	for _, field := range []string{r.TechnicalSkills, r.SoftSkills, r.Tools} {
		for _, skill := range strings.Split(field, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				skills = append(skills, skill)
			}
		}
	}
	return skills
}
