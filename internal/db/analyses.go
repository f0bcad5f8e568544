package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-analyzer/internal/types"
)

// SaveAnalysis stores a completed analysis and consumes one credit. The credit row is
// locked for the whole transaction so concurrent saves cannot exceed the limit.
func (db *DB) SaveAnalysis(ctx context.Context, userID uuid.UUID, role types.UserRole, profile *types.CareerProfile, analysis *types.CareerAnalysis) (uuid.UUID, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	used, err := lockCredits(ctx, tx, userID, time.Now().UTC())
	if err != nil {
		return uuid.Nil, err
	}
	limit := db.limits.LimitFor(role)
	if limit >= 0 && used >= limit {
		return uuid.Nil, ErrCreditLimitExceeded
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO career_analyses (user_id, role, profile, analysis)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, string(role), profileJSON, analysisJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert analysis: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE analysis_credits SET used = used + 1, updated_at = NOW() WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to consume credit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit analysis: %w", err)
	}
	return id, nil
}

// LatestAnalysis returns the most recent analysis for a user, or nil if there is none.
func (db *DB) LatestAnalysis(ctx context.Context, userID uuid.UUID) (*StoredAnalysis, error) {
	var s StoredAnalysis
	var role string
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, role, profile, analysis, created_at
		 FROM career_analyses
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	).Scan(&s.ID, &s.UserID, &role, &s.Profile, &s.Analysis, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest analysis: %w", err)
	}
	s.Role = types.UserRole(role)
	return &s, nil
}
