package main

import (
	"context"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a résumé against a job's keywords",
	Long:  "Compute the ATS compatibility score of a résumé (JSON, PDF, DOCX or text) for a keyword set or job description.",
	RunE:  runScore,
}

var (
	scoreResumeFile string
	scoreJob        jobSource
	scoreUseBrowser bool
	scoreOutFile    string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to résumé (json, pdf, docx, doc or txt)")
	scoreCmd.Flags().StringVarP(&scoreOutFile, "out", "o", "", "Write the score to this file instead of stdout")
	addJobSourceFlags(scoreCmd, &scoreJob, &scoreUseBrowser)
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
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

	r, err := loadResume(analyzer, scoreResumeFile)
	if err != nil {
		return err
	}
	p := printer(cmd, cfg)
	ks, err := loadKeywords(ctx, analyzer, scoreJob, scoreUseBrowser || cfg.UseBrowser, p)
	if err != nil {
		return err
	}

	score := analyzer.CalculateScore(r, ks)
	if p != nil {
		p.PrintScore(score)
	}
	return writeJSON(cmd.OutOrStdout(), scoreOutFile, score)
}
