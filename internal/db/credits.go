package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-analyzer/internal/types"
)

// ErrCreditLimitExceeded is returned when a user has no analyses left this period.
var ErrCreditLimitExceeded = errors.New("analysis credit limit exceeded")

// CheckCredits returns the user's usage for the current period. It fails with
// ErrCreditLimitExceeded, alongside the status, when no analyses remain.
func (db *DB) CheckCredits(ctx context.Context, userID uuid.UUID, role types.UserRole) (CreditStatus, error) {
	var used int
	var periodStart time.Time
	err := db.pool.QueryRow(ctx,
		`SELECT used, period_start FROM analysis_credits WHERE user_id = $1`,
		userID,
	).Scan(&used, &periodStart)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return CreditStatus{}, fmt.Errorf("failed to read credits: %w", err)
	}

	now := time.Now().UTC()
	used = effectiveUsed(used, periodStart, now)
	status := newCreditStatus(userID, role, used, db.limits.LimitFor(role), periodFor(now))
	if status.Exhausted() {
		return status, ErrCreditLimitExceeded
	}
	return status, nil
}

// lockCredits reads and locks the user's credit row inside a transaction, creating it
// when missing and resetting usage when the period rolled over.
func lockCredits(ctx context.Context, tx pgx.Tx, userID uuid.UUID, now time.Time) (int, error) {
	period := periodFor(now)
	_, err := tx.Exec(ctx,
		`INSERT INTO analysis_credits (user_id, used, period_start)
		 VALUES ($1, 0, $2)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, period,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize credits: %w", err)
	}

	var used int
	var periodStart time.Time
	err = tx.QueryRow(ctx,
		`SELECT used, period_start FROM analysis_credits WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&used, &periodStart)
	if err != nil {
		return 0, fmt.Errorf("failed to lock credits: %w", err)
	}

	if periodStart.Before(period) {
		_, err = tx.Exec(ctx,
			`UPDATE analysis_credits SET used = 0, period_start = $2, updated_at = NOW() WHERE user_id = $1`,
			userID, period,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to reset credits: %w", err)
		}
		used = 0
	}
	return used, nil
}

func newCreditStatus(userID uuid.UUID, role types.UserRole, used, limit int, period time.Time) CreditStatus {
	status := CreditStatus{
		UserID:      userID,
		Role:        role,
		Used:        used,
		Limit:       limit,
		PeriodStart: period,
	}
	if limit < 0 {
		status.Unlimited = true
		status.Remaining = Unlimited
		return status
	}
	status.Remaining = limit - used
	if status.Remaining < 0 {
		status.Remaining = 0
	}
	return status
}

// periodFor returns the start of the calendar month containing t, in UTC.
func periodFor(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// effectiveUsed discards usage recorded in an earlier period.
func effectiveUsed(used int, periodStart, now time.Time) int {
	if periodStart.Before(periodFor(now)) {
		return 0
	}
	return used
}
