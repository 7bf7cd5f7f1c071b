package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-optimizer/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the GoBot /api endpoints.
PostgreSQL analysis storage and the Redis keyword cache are enabled when
DATABASE_URL and REDIS_ADDR are set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default $PORT or 5000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	analyzer, closers, err := buildAnalyzer(context.Background(), cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	srv := server.New(server.Config{
		Port:           cfg.Port,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AllowedOrigins: cfg.AllowedOrigins,
		Analyzer:       analyzer,
		Closers:        closers,
	})
	return srv.Start()
}
