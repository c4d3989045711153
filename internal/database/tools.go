package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"scriptura-api/internal/shared"

	"github.com/google/uuid"
)

// GetToolByIntent resolves a catalog row by its intent key.
func GetToolByIntent(ctx context.Context, db *sql.DB, intent string) (*shared.Tool, error) {
	var tool shared.Tool
	err := db.QueryRowContext(ctx, `
		SELECT id, name, description, system_prompt, intent, cost
		FROM tool WHERE intent = ?`, intent).Scan(
		&tool.ID, &tool.Name, &tool.Description, &tool.SystemPrompt, &tool.Intent, &tool.Cost)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Join(fmt.Errorf("tool with intent %q not found", intent), shared.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tool: %w", err)
	}
	return &tool, nil
}

// ListTools returns the whole catalog.
func ListTools(ctx context.Context, db *sql.DB) ([]shared.Tool, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT id, name, description, system_prompt, intent, cost FROM tool ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	defer rows.Close()

	tools := []shared.Tool{}
	for rows.Next() {
		var tool shared.Tool
		if err := rows.Scan(&tool.ID, &tool.Name, &tool.Description, &tool.SystemPrompt, &tool.Intent, &tool.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}
		tools = append(tools, tool)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tools: %w", err)
	}

	return tools, nil
}

// CreateTool adds a catalog entry. Cost must be a positive integer; it is
// fixed at creation time and never user-adjustable.
func CreateTool(ctx context.Context, db *sql.DB, tool *shared.Tool) (string, error) {
	if tool.Cost == 0 {
		return "", errors.Join(errors.New("tool cost must be positive"), shared.ErrBadRequest)
	}
	id := uuid.NewString()
	_, err := db.ExecContext(ctx, `
		INSERT INTO tool (id, name, description, system_prompt, intent, cost)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, tool.Name, tool.Description, tool.SystemPrompt, tool.Intent, tool.Cost)
	if err != nil {
		if isDuplicateEntry(err) {
			return "", errors.Join(fmt.Errorf("intent %q already registered", tool.Intent), shared.ErrBadRequest)
		}
		return "", fmt.Errorf("failed to create tool: %w", err)
	}
	return id, nil
}

// UpdateTool updates the descriptive fields of a catalog entry.
func UpdateTool(ctx context.Context, db *sql.DB, id, name, description, systemPrompt string) error {
	res, err := db.ExecContext(ctx,
		"UPDATE tool SET name = ?, description = ?, system_prompt = ? WHERE id = ?",
		name, description, systemPrompt, id)
	if err != nil {
		return fmt.Errorf("failed to update tool: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read tool update result: %w", err)
	}
	if affected == 0 {
		return errors.Join(fmt.Errorf("tool %s not found", id), shared.ErrNotFound)
	}
	return nil
}

// DeleteTool removes a catalog entry. Its generations keep their tool_id so
// history stays navigable.
func DeleteTool(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, "DELETE FROM tool WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tool: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read tool delete result: %w", err)
	}
	if affected == 0 {
		return errors.Join(fmt.Errorf("tool %s not found", id), shared.ErrNotFound)
	}
	return nil
}
