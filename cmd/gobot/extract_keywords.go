package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var extractKeywordsCmd = &cobra.Command{
	Use:   "extract-keywords",
	Short: "Extract categorized keywords from a job description",
	Long:  "Read a job description from a text/HTML file or a job posting URL and print its keyword set as JSON.",
	RunE:  runExtractKeywords,
}

var (
	extractJobFile    string
	extractJobURL     string
	extractUseBrowser bool
	extractOutFile    string
)

func init() {
	extractKeywordsCmd.Flags().StringVarP(&extractJobFile, "job-file", "j", "", "Path to job description text or HTML")
	extractKeywordsCmd.Flags().StringVarP(&extractJobURL, "job-url", "u", "", "URL of the job posting")
	extractKeywordsCmd.Flags().BoolVar(&extractUseBrowser, "use-browser", false, "Render the job page in a headless browser")
	extractKeywordsCmd.Flags().StringVarP(&extractOutFile, "out", "o", "", "Write the keyword set to this file instead of stdout")
	rootCmd.AddCommand(extractKeywordsCmd)
}

func runExtractKeywords(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src := jobSource{JobFile: extractJobFile, JobURL: extractJobURL}
	if src.JobFile == "" && src.JobURL == "" {
		return errNoJobInput
	}
	if src.JobFile != "" && src.JobURL != "" {
		return fmt.Errorf("--job-file and --job-url are mutually exclusive; provide only one")
	}

	ctx := context.Background()
	analyzer, closers, err := buildAnalyzer(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer runClosers(closers)

	p := printer(cmd, cfg)
	ks, err := loadKeywords(ctx, analyzer, src, extractUseBrowser || cfg.UseBrowser, p)
	if err != nil {
		return err
	}
	if p != nil {
		p.PrintKeywords(ks)
	}
	return writeJSON(cmd.OutOrStdout(), extractOutFile, ks)
}
