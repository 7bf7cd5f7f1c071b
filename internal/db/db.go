// Package db provides PostgreSQL storage for analysis summaries.
// Résumé text is never written to the database.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// schema creates the tables used by the analysis store. It is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	keywords_hash TEXT NOT NULL,
	keywords      JSONB NOT NULL,
	before_score  JSONB NOT NULL,
	after_score   JSONB NOT NULL,
	changes       JSONB NOT NULL,
	delta         INTEGER NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_analyses_keywords_hash ON analyses (keywords_hash);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC);
`

// EnsureSchema creates the analysis tables when they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
