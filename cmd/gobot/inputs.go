package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/observability"
	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/schemas"
	"github.com/jonathan/resume-optimizer/internal/types"
)

var errNoJobInput = errors.New("either --job-file or --job-url must be provided")

// jobSource names where a keyword set comes from. Exactly one field is set.
type jobSource struct {
	KeywordsFile string // keyword set JSON
	JobFile      string // job description text or HTML
	JobURL       string // job posting page
}

// addJobSourceFlags registers --keywords, --job-file and --job-url on cmd
func addJobSourceFlags(cmd *cobra.Command, src *jobSource, useBrowser *bool) {
	cmd.Flags().StringVarP(&src.KeywordsFile, "keywords", "k", "", "Path to keyword set JSON (from extract-keywords)")
	cmd.Flags().StringVarP(&src.JobFile, "job-file", "j", "", "Path to job description text or HTML")
	cmd.Flags().StringVarP(&src.JobURL, "job-url", "u", "", "URL of the job posting")
	cmd.Flags().BoolVar(useBrowser, "use-browser", false, "Render the job page in a headless browser")
}

func (s jobSource) validate() error {
	set := 0
	for _, v := range []string{s.KeywordsFile, s.JobFile, s.JobURL} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one of --keywords, --job-file or --job-url must be provided")
	}
	return nil
}

// readJobDescription loads job text from a file or URL
func readJobDescription(ctx context.Context, src jobSource, useBrowser bool, p *observability.Printer) (string, error) {
	var (
		text     string
		metadata *ingestion.Metadata
		err      error
	)
	if src.JobURL != "" {
		text, metadata, err = ingestion.FromURL(ctx, src.JobURL, useBrowser, p != nil)
		if err != nil {
			return "", fmt.Errorf("failed to fetch job description: %w", err)
		}
	} else {
		text, metadata, err = ingestion.ReadJobDescription(src.JobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
	}

	if p != nil && metadata != nil {
		if metaJSON, err := metadata.ToJSON(); err == nil {
			p.PrintProgress("ingest", string(metaJSON))
		}
	}
	return text, nil
}

// loadKeywords reads a keyword set file or extracts one from a job description
func loadKeywords(ctx context.Context, analyzer *pipeline.Analyzer, src jobSource, useBrowser bool, p *observability.Printer) (types.KeywordSet, error) {
	if err := src.validate(); err != nil {
		return types.KeywordSet{}, err
	}

	if src.KeywordsFile != "" {
		data, err := os.ReadFile(src.KeywordsFile)
		if err != nil {
			return types.KeywordSet{}, fmt.Errorf("failed to read keywords file: %w", err)
		}
		if err := checkSchema(schemas.ValidateKeywordSet(data), src.KeywordsFile); err != nil {
			return types.KeywordSet{}, err
		}
		ks := types.NewKeywordSet()
		if err := json.Unmarshal(data, &ks); err != nil {
			return types.KeywordSet{}, fmt.Errorf("failed to parse keywords file: %w", err)
		}
		return ks, nil
	}

	text, err := readJobDescription(ctx, src, useBrowser, p)
	if err != nil {
		return types.KeywordSet{}, err
	}
	return analyzer.ExtractKeywords(ctx, text), nil
}

// loadResume reads a résumé as JSON, or decodes and parses a PDF, DOCX or
// text file by extension
func loadResume(analyzer *pipeline.Analyzer, path string) (*types.Resume, error) {
	if path == "" {
		return nil, fmt.Errorf("--resume is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	if strings.EqualFold(parsing.Extension(path), "json") {
		if err := checkSchema(schemas.ValidateResume(data), path); err != nil {
			return nil, err
		}
		r := types.NewResume()
		if err := json.Unmarshal(data, r); err != nil {
			return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
		}
		return r, nil
	}

	result := analyzer.ParseFile(path, data)
	if result.Failed() {
		return nil, errors.New(result.Error)
	}
	return result.Resume, nil
}

// checkSchema turns a schema validation failure into a CLI error. A schema
// that cannot be loaded only produces a warning.
func checkSchema(err error, path string) error {
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("%s does not match schema: %w", path, err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate %s against schema: %v\n", path, err)
	return nil
}
