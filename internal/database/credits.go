package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"scriptura-api/internal/shared"
)

// DebitCredits atomically deducts cost from the user's balance. The credits
// guard lives in the statement itself so two concurrent debits can never both
// pass a stale balance check; a user with fewer credits than cost matches
// zero rows. The unsigned credits column keeps the balance from ever going
// negative even if the guard were bypassed.
func DebitCredits(ctx context.Context, db *sql.DB, userID string, cost uint64) error {
	res, err := db.ExecContext(ctx,
		"UPDATE user SET credits = credits - ? WHERE id = ? AND credits >= ?",
		cost, userID, cost)
	if err != nil {
		return fmt.Errorf("failed to debit credits: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read debit result: %w", err)
	}
	if affected == 0 {
		return errors.Join(fmt.Errorf("user %s lacks %d credits", userID, cost), shared.ErrInsufficientCredits)
	}
	return nil
}

// RefundCredits returns cost to the user's balance after a failed generation.
// A refund that errors here is unrecoverable by automatic means and must be
// surfaced for manual reconciliation.
func RefundCredits(ctx context.Context, db *sql.DB, userID string, cost uint64) error {
	res, err := db.ExecContext(ctx,
		"UPDATE user SET credits = credits + ? WHERE id = ?",
		cost, userID)
	if err != nil {
		return fmt.Errorf("failed to refund credits: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read refund result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("refund matched no user %s", userID)
	}
	return nil
}

// GetCredits reads the user's current balance.
func GetCredits(ctx context.Context, db *sql.DB, userID string) (uint64, error) {
	var credits uint64
	err := db.QueryRowContext(ctx, "SELECT credits FROM user WHERE id = ?", userID).Scan(&credits)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, errors.Join(fmt.Errorf("user %s not found", userID), shared.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to get credits: %w", err)
	}
	return credits, nil
}
