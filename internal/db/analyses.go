package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// SaveAnalysis stores an analysis summary and returns it with its generated ID
func (db *DB) SaveAnalysis(ctx context.Context, input *AnalysisInput) (*Analysis, error) {
	keywordsJSON, err := json.Marshal(input.Keywords)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keywords: %w", err)
	}
	beforeJSON, err := json.Marshal(input.BeforeScore)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal before score: %w", err)
	}
	afterJSON, err := json.Marshal(input.AfterScore)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal after score: %w", err)
	}
	changes := input.Changes
	if changes == nil {
		changes = []types.Change{}
	}
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal changes: %w", err)
	}

	a := &Analysis{
		KeywordsHash: HashKeywords(input.Keywords),
		Keywords:     input.Keywords,
		BeforeScore:  input.BeforeScore,
		AfterScore:   input.AfterScore,
		Changes:      changes,
		Delta:        input.AfterScore.Overall - input.BeforeScore.Overall,
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (keywords_hash, keywords, before_score, after_score, changes, delta)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		a.KeywordsHash, keywordsJSON, beforeJSON, afterJSON, changesJSON, a.Delta,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return a, nil
}

// GetAnalysis retrieves an analysis by ID. It returns nil, nil when none exists.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, keywords_hash, keywords, before_score, after_score, changes, delta, created_at
		 FROM analyses WHERE id = $1`,
		id,
	)
	a, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return a, nil
}

// ListAnalyses returns the most recent analyses, newest first
func (db *DB) ListAnalyses(ctx context.Context, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, keywords_hash, keywords, before_score, after_score, changes, delta, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := make([]Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return analyses, nil
}

// DeleteAnalysesOlderThan removes analyses created before now minus age and
// returns how many were deleted
func (db *DB) DeleteAnalysesOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM analyses WHERE created_at < $1`,
		time.Now().Add(-age),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old analyses: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanAnalysis decodes one analyses row; JSONB columns are scanned as raw bytes
func scanAnalysis(row pgx.Row) (*Analysis, error) {
	var a Analysis
	var keywordsJSON, beforeJSON, afterJSON, changesJSON []byte
	if err := row.Scan(&a.ID, &a.KeywordsHash, &keywordsJSON, &beforeJSON, &afterJSON, &changesJSON, &a.Delta, &a.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(keywordsJSON, &a.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}
	if err := json.Unmarshal(beforeJSON, &a.BeforeScore); err != nil {
		return nil, fmt.Errorf("failed to decode before score: %w", err)
	}
	if err := json.Unmarshal(afterJSON, &a.AfterScore); err != nil {
		return nil, fmt.Errorf("failed to decode after score: %w", err)
	}
	if err := json.Unmarshal(changesJSON, &a.Changes); err != nil {
		return nil, fmt.Errorf("failed to decode changes: %w", err)
	}
	return &a, nil
}
