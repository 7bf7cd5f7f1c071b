package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/pipeline"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rewrite a résumé for a job and report the score change",
	Long: `Tailor a résumé to a job's keywords: extend the summary, strengthen bullets
and add missing skills. Prints the optimized résumé, its score and a
before/after comparison as JSON. With --out only the optimized résumé is
written to the file.`,
	RunE: runOptimize,
}

var (
	optimizeResumeFile string
	optimizeJob        jobSource
	optimizeUseBrowser bool
	optimizeOutFile    string
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeResumeFile, "resume", "r", "", "Path to résumé (json, pdf, docx, doc or txt)")
	optimizeCmd.Flags().StringVarP(&optimizeOutFile, "out", "o", "", "Write the optimized résumé JSON to this file")
	addJobSourceFlags(optimizeCmd, &optimizeJob, &optimizeUseBrowser)
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := printer(cmd, cfg)
	var onProgress pipeline.ProgressCallback
	if p != nil {
		onProgress = func(event pipeline.ProgressEvent) {
			p.PrintProgress(event.Step, event.Message)
		}
	}

	ctx := context.Background()
	analyzer, closers, err := buildAnalyzer(ctx, cfg, onProgress)
	if err != nil {
		return err
	}
	defer runClosers(closers)

	r, err := loadResume(analyzer, optimizeResumeFile)
	if err != nil {
		return err
	}
	ks, err := loadKeywords(ctx, analyzer, optimizeJob, optimizeUseBrowser || cfg.UseBrowser, p)
	if err != nil {
		return err
	}

	result, err := analyzer.OptimizeResume(ctx, r, ks)
	if err != nil {
		return fmt.Errorf("failed to optimize resume: %w", err)
	}

	if p != nil {
		p.PrintChanges(result.OptimizedResume.Changes)
		p.PrintComparison(result.Comparison)
		p.PrintScore(result.Score)
	}

	if optimizeOutFile != "" {
		if err := writeJSON(nil, optimizeOutFile, result.OptimizedResume.Resume); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Score: %d -> %d (%+d)\n",
			result.Comparison.BeforeScore, result.Comparison.AfterScore, result.Comparison.Delta)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", optimizeOutFile)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), "", result)
}
