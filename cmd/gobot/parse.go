package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/pipeline"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a résumé file into structured JSON",
	Long:  "Decode a PDF, DOCX or text résumé and print the structured record as JSON.",
	RunE:  runParse,
}

var (
	parseFile    string
	parseOutFile string
)

func init() {
	parseCmd.Flags().StringVarP(&parseFile, "file", "f", "", "Path to résumé (pdf, docx, doc or txt)")
	parseCmd.Flags().StringVarP(&parseOutFile, "out", "o", "", "Write the parsed résumé to this file instead of stdout")
	_ = parseCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Parsing never touches the store or cache
	analyzer := pipeline.New(pipeline.Options{})
	r, err := loadResume(analyzer, parseFile)
	if err != nil {
		return err
	}
	if p := printer(cmd, cfg); p != nil {
		p.PrintResume(r)
	}
	return writeJSON(cmd.OutOrStdout(), parseOutFile, r)
}
