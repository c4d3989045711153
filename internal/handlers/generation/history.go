package generation

import (
	"context"
	"errors"
	"strings"

	"scriptura-api/internal/shared"
)

// DeleteInput contains all data needed for the delete logic.
type DeleteInput struct {
	Ctx          context.Context
	UserID       string
	GenerationID string
}

// DeleteLogic removes a generation only when it is both matched by id and
// owned by the requesting user. Absent-or-not-owned surfaces as not found,
// never as success.
func (h *GenerationHandler) DeleteLogic(input *DeleteInput) error {
	if strings.TrimSpace(input.GenerationID) == "" {
		return errors.Join(errors.New("generation id is required"), shared.ErrInvalidFields)
	}
	if err := h.Store.DeleteGeneration(input.Ctx, input.GenerationID, input.UserID); err != nil {
		return err
	}
	return nil
}

type GetInput struct {
	Ctx          context.Context
	UserID       string
	GenerationID string
}

func (h *GenerationHandler) GetLogic(input *GetInput) (*shared.Generation, error) {
	return h.Store.GetGeneration(input.Ctx, input.GenerationID, input.UserID)
}

type HistoryInput struct {
	Ctx    context.Context
	UserID string
	Intent string
	Limit  int
}

// HistoryLogic lists the user's generations newest first, optionally scoped
// to one intent.
func (h *GenerationHandler) HistoryLogic(input *HistoryInput) ([]shared.Generation, error) {
	toolID := ""
	if input.Intent != "" {
		if _, err := h.Registry.Lookup(input.Intent); err != nil {
			return nil, err
		}
		tool, err := h.Store.GetToolByIntent(input.Ctx, input.Intent)
		if err != nil {
			return nil, errors.Join(errors.New("failed to resolve tool for history filter"), err)
		}
		toolID = tool.ID
	}
	return h.Store.ListGenerations(input.Ctx, input.UserID, toolID, input.Limit)
}

type AnalyticsInput struct {
	Ctx    context.Context
	UserID string
}

// AnalyticsLogic reports per-intent generation counts for the user's
// dashboard.
func (h *GenerationHandler) AnalyticsLogic(input *AnalyticsInput) (map[string]uint64, error) {
	counts, err := h.Store.CountGenerationsByTool(input.Ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	// Intents with no generations still show up as zero.
	for _, intent := range h.Registry.Intents() {
		if _, ok := counts[intent]; !ok {
			counts[intent] = 0
		}
	}
	return counts, nil
}
