package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scriptura-api/internal/shared"

	"github.com/google/uuid"
)

// InsertGeneration persists one completed generation and returns its id.
func InsertGeneration(ctx context.Context, db *sql.DB, userID, toolID string, data json.RawMessage) (string, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		"INSERT INTO generation (id, user_id, tool_id, data, created_at) VALUES (?, ?, ?, ?, ?)",
		id, userID, toolID, []byte(data), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert generation: %w", err)
	}
	return id, nil
}

// DeleteGeneration removes a generation only when both id and owner match.
// Zero affected rows means the record is absent or owned by someone else;
// callers must not report that as success.
func DeleteGeneration(ctx context.Context, db *sql.DB, id, ownerID string) error {
	res, err := db.ExecContext(ctx,
		"DELETE FROM generation WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete generation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return errors.Join(fmt.Errorf("generation %s not found for user %s", id, ownerID), shared.ErrNotFound)
	}
	return nil
}

// GetGeneration fetches one generation scoped to its owner.
func GetGeneration(ctx context.Context, db *sql.DB, id, ownerID string) (*shared.Generation, error) {
	var gen shared.Generation
	var data []byte
	err := db.QueryRowContext(ctx,
		"SELECT id, user_id, tool_id, data, created_at FROM generation WHERE id = ? AND user_id = ?",
		id, ownerID).Scan(&gen.ID, &gen.UserID, &gen.ToolID, &data, &gen.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Join(fmt.Errorf("generation %s not found", id), shared.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	gen.Data = json.RawMessage(data)
	return &gen, nil
}

// ListGenerations returns the user's generations newest first, optionally
// filtered to one tool.
func ListGenerations(ctx context.Context, db *sql.DB, userID, toolID string, limit int) ([]shared.Generation, error) {
	if limit <= 0 || limit > shared.MaxHistoryLimit {
		limit = shared.DefaultHistoryLimit
	}

	query := "SELECT id, user_id, tool_id, data, created_at FROM generation WHERE user_id = ?"
	args := []any{userID}
	if toolID != "" {
		query += " AND tool_id = ?"
		args = append(args, toolID)
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	generations := []shared.Generation{}
	for rows.Next() {
		var gen shared.Generation
		var data []byte
		if err := rows.Scan(&gen.ID, &gen.UserID, &gen.ToolID, &data, &gen.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		gen.Data = json.RawMessage(data)
		generations = append(generations, gen)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generations: %w", err)
	}

	return generations, nil
}

// CountGenerationsByTool aggregates the user's generation counts per intent.
func CountGenerationsByTool(ctx context.Context, db *sql.DB, userID string) (map[string]uint64, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT tool.intent, COUNT(generation.id)
		FROM generation
		INNER JOIN tool ON generation.tool_id = tool.id
		WHERE generation.user_id = ?
		GROUP BY tool.intent`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count generations: %w", err)
	}
	defer rows.Close()

	counts := map[string]uint64{}
	for rows.Next() {
		var intent string
		var count uint64
		if err := rows.Scan(&intent, &count); err != nil {
			return nil, fmt.Errorf("failed to scan generation count: %w", err)
		}
		counts[intent] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generation counts: %w", err)
	}

	return counts, nil
}
