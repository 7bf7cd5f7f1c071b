package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/db"
)

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "List or prune stored optimization summaries",
	Long:  "List the most recent analysis summaries stored in PostgreSQL, or delete those older than --prune. Requires DATABASE_URL.",
	RunE:  runAnalyses,
}

var (
	analysesLimit int
	analysesPrune time.Duration
)

func init() {
	analysesCmd.Flags().IntVarP(&analysesLimit, "limit", "n", db.DefaultListLimit, "Number of analyses to list")
	analysesCmd.Flags().DurationVar(&analysesPrune, "prune", 0, "Delete analyses older than this duration (e.g. 720h) instead of listing")
	rootCmd.AddCommand(analysesCmd)
}

func runAnalyses(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required to read stored analyses")
	}
	if analysesPrune < 0 {
		return fmt.Errorf("--prune must be a positive duration")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare database schema: %w", err)
	}

	if analysesPrune > 0 {
		deleted, err := database.DeleteAnalysesOlderThan(ctx, analysesPrune)
		if err != nil {
			return fmt.Errorf("failed to prune analyses: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d analyses older than %s\n", deleted, analysesPrune)
		return nil
	}

	analyses, err := database.ListAnalyses(ctx, analysesLimit)
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), "", analyses)
}
