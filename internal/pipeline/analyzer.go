// Package pipeline connects the keyword, parsing, scoring and rewriting
// packages into the operations exposed by the HTTP server and the CLI.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/keywords"
	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/jonathan/resume-optimizer/internal/rewriting"
	"github.com/jonathan/resume-optimizer/internal/scoring"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// KeywordCache stores extracted keyword sets by job description hash
type KeywordCache interface {
	Get(ctx context.Context, hash string) (types.KeywordSet, bool, error)
	Set(ctx context.Context, hash string, ks types.KeywordSet) error
}

// AnalysisStore persists optimization summaries
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, input *db.AnalysisInput) (*db.Analysis, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*db.Analysis, error)
	ListAnalyses(ctx context.Context, limit int) ([]db.Analysis, error)
}

// ErrStoreDisabled is returned by analysis lookups when no store is configured
var ErrStoreDisabled = errors.New("analysis store is not configured")

// Options configures an Analyzer. Every field is optional.
type Options struct {
	Cache      KeywordCache
	Store      AnalysisStore
	Decoder    parsing.Decoder
	OnProgress ProgressCallback
}

// Analyzer runs the résumé operations. It holds no per-request state and is
// safe for concurrent use when its cache and store are.
type Analyzer struct {
	cache      KeywordCache
	store      AnalysisStore
	decoder    parsing.Decoder
	onProgress ProgressCallback
}

// New creates an Analyzer. A nil decoder defaults to the ingestion decoder.
func New(opts Options) *Analyzer {
	dec := opts.Decoder
	if dec == nil {
		dec = ingestion.NewDecoder()
	}
	return &Analyzer{
		cache:      opts.Cache,
		store:      opts.Store,
		decoder:    dec,
		onProgress: opts.OnProgress,
	}
}

// WithProgress returns a copy of the Analyzer that reports progress to cb.
// The cache and store are shared with the receiver.
func (a *Analyzer) WithProgress(cb ProgressCallback) *Analyzer {
	c := *a
	c.onProgress = cb
	return &c
}

// ExtractKeywords returns the keyword set of a job description. HTML input is
// reduced to text first. Cache failures are logged and fall through to extraction.
func (a *Analyzer) ExtractKeywords(ctx context.Context, jobDescription string) types.KeywordSet {
	text := ingestion.PrepareJobDescription(jobDescription)
	if strings.TrimSpace(text) == "" {
		return types.NewKeywordSet()
	}

	hash := ingestion.ContentHash(text)
	if a.cache != nil {
		ks, found, err := a.cache.Get(ctx, hash)
		if err != nil {
			log.Printf("[cache] lookup failed for %s: %v", shortHash(hash), err)
		} else if found {
			a.emitProgress(StepExtractKeywords, fmt.Sprintf("Loaded %d keywords from cache", len(ks.All)), ks)
			return ks
		}
	}

	ks := keywords.Extract(text)
	a.emitProgress(StepExtractKeywords, fmt.Sprintf("Extracted %d keywords", len(ks.All)), ks)

	if a.cache != nil {
		if err := a.cache.Set(ctx, hash, ks); err != nil {
			log.Printf("[cache] store failed for %s: %v", shortHash(hash), err)
		}
	}
	return ks
}

// CalculateScore scores a résumé against a keyword set
func (a *Analyzer) CalculateScore(r *types.Resume, ks types.KeywordSet) types.ScoreResult {
	return scoring.CalculateScore(r, ks)
}

// OptimizeResume rewrites the résumé, scores the original and the rewrite
// concurrently and compares them. When a store is configured the summary is
// saved; a failed save is logged and leaves AnalysisID unset.
func (a *Analyzer) OptimizeResume(ctx context.Context, r *types.Resume, ks types.KeywordSet) (*types.OptimizeResponse, error) {
	if r == nil {
		r = types.NewResume()
	}

	optimized := rewriting.Optimize(r, ks)
	a.emitProgress(StepOptimize, fmt.Sprintf("Applied %d changes", len(optimized.Changes)), optimized.Changes)

	g, gCtx := errgroup.WithContext(ctx)

	var before, after types.ScoreResult
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		before = scoring.CalculateScore(r, ks)
		return nil
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		after = scoring.CalculateScore(&optimized.Resume, ks)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}
	a.emitProgress(StepScore, fmt.Sprintf("Score %d -> %d", before.Overall, after.Overall), after)

	comparison := scoring.Compare(before, after, optimized.Changes)
	a.emitProgress(StepCompare, fmt.Sprintf("Changed sections: %v", comparison.ChangedSections), comparison)

	resp := &types.OptimizeResponse{
		OptimizedResume: optimized,
		Score:           after,
		Comparison:      comparison,
	}

	if a.store != nil {
		saved, err := a.store.SaveAnalysis(ctx, &db.AnalysisInput{
			Keywords:    ks,
			BeforeScore: before,
			AfterScore:  after,
			Changes:     optimized.Changes,
		})
		if err != nil {
			log.Printf("[store] failed to save analysis: %v", err)
		} else {
			resp.AnalysisID = &saved.ID
			a.emitProgress(StepPersist, fmt.Sprintf("Saved analysis %s", saved.ID), nil)
		}
	}

	return resp, nil
}

// ParseText parses plain résumé text into a structured record
func (a *Analyzer) ParseText(text string) *types.Resume {
	return parsing.ParseText(text)
}

// ParseFile decodes and parses an uploaded résumé. Failures are reported in
// the result's Error field.
func (a *Analyzer) ParseFile(filename string, data []byte) *types.ParseResult {
	return parsing.ParseFile(filename, data, a.decoder)
}

// Variations returns alternative optimizations of the résumé, each scored
// against the keyword set
func (a *Analyzer) Variations(r *types.Resume, ks types.KeywordSet, count int) []types.Variation {
	if r == nil {
		r = types.NewResume()
	}
	variations := rewriting.Variations(r, ks, count)
	for i := range variations {
		variations[i].Score = scoring.CalculateScore(&variations[i].Resume, ks)
	}
	return variations
}

// Suggestions lists job skills missing from the résumé's skill list
func (a *Analyzer) Suggestions(resumeSkills []string, ks types.KeywordSet) []types.Suggestion {
	return keywords.Suggestions(resumeSkills, ks)
}

// Matches partitions the job keywords into those found in the résumé and those missing
func (a *Analyzer) Matches(r *types.Resume, ks types.KeywordSet) types.MatchResult {
	return keywords.FindMatches(scoring.FullResumeText(r), ks)
}

// Analysis returns a stored analysis, or nil when it does not exist
func (a *Analyzer) Analysis(ctx context.Context, id uuid.UUID) (*db.Analysis, error) {
	if a.store == nil {
		return nil, ErrStoreDisabled
	}
	return a.store.GetAnalysis(ctx, id)
}

// RecentAnalyses returns up to limit stored analyses, newest first
func (a *Analyzer) RecentAnalyses(ctx context.Context, limit int) ([]db.Analysis, error) {
	if a.store == nil {
		return nil, ErrStoreDisabled
	}
	return a.store.ListAnalyses(ctx, limit)
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
