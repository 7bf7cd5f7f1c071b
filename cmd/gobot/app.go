package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/cache"
	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/observability"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
)

var (
	_ pipeline.AnalysisStore = (*db.DB)(nil)
	_ pipeline.KeywordCache  = (*cache.KeywordCache)(nil)
)

// loadConfig layers the --config file over the environment and applies
// persistent flags on top
func loadConfig() (*config.Config, error) {
	cfg := config.FromEnv()
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// buildAnalyzer wires the Postgres store and the Redis keyword cache when they
// are configured. The returned closers release them and must be run by the caller.
func buildAnalyzer(ctx context.Context, cfg *config.Config, onProgress pipeline.ProgressCallback) (*pipeline.Analyzer, []func(), error) {
	opts := pipeline.Options{OnProgress: onProgress}
	var closers []func()

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		closers = append(closers, database.Close)
		if err := database.EnsureSchema(ctx); err != nil {
			runClosers(closers)
			return nil, nil, fmt.Errorf("failed to prepare database schema: %w", err)
		}
		opts.Store = database
		log.Printf("[store] Analysis summaries will be stored in PostgreSQL")
	}

	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			runClosers(closers)
			return nil, nil, err
		}
		keywordCache := cache.NewKeywordCache(client, cache.DefaultPrefix, cfg.CacheTTL())
		closers = append(closers, func() { _ = keywordCache.Close() })
		opts.Cache = keywordCache
		log.Printf("[cache] Keyword cache enabled at %s", cfg.RedisAddr)
	}

	return pipeline.New(opts), closers, nil
}

// runClosers runs closers in reverse order of acquisition
func runClosers(closers []func()) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}

// printer returns a box printer on stderr when verbose output is on, else nil
func printer(cmd *cobra.Command, cfg *config.Config) *observability.Printer {
	if !cfg.Verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

// writeJSON prints v as indented JSON, or writes it to path when path is set
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
