// Package tool implements admin management of the tool catalog.
package tool

import (
	"context"
	"errors"
	"strings"

	"scriptura-api/internal/shared"
	"scriptura-api/internal/tools"

	"go.uber.org/zap"
)

type Store interface {
	ListTools(ctx context.Context) ([]shared.Tool, error)
	CreateTool(ctx context.Context, tool *shared.Tool) (string, error)
	UpdateTool(ctx context.Context, id, name, description, systemPrompt string) error
	DeleteTool(ctx context.Context, id string) error
}

type ToolHandler struct {
	Store    Store
	Registry *tools.Registry
	Log      *zap.SugaredLogger
}

func NewToolHandler(store Store, registry *tools.Registry, log *zap.SugaredLogger) *ToolHandler {
	return &ToolHandler{Store: store, Registry: registry, Log: log}
}

func (h *ToolHandler) ListLogic(ctx context.Context) ([]shared.Tool, error) {
	return h.Store.ListTools(ctx)
}

type CreateInput struct {
	Ctx          context.Context
	Name         string
	Description  string
	SystemPrompt string
	Intent       string
	Cost         uint64
}

// CreateLogic adds a catalog row. The intent must already exist in the code
// registry; a catalog row without schema and prompt builder behind it could
// never serve a generation.
func (h *ToolHandler) CreateLogic(input *CreateInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", errors.Join(errors.New("tool name is required"), shared.ErrInvalidFields)
	}
	if _, err := h.Registry.Lookup(input.Intent); err != nil {
		return "", err
	}
	if input.Cost == 0 {
		return "", errors.Join(errors.New("tool cost must be positive"), shared.ErrInvalidFields)
	}

	id, err := h.Store.CreateTool(input.Ctx, &shared.Tool{
		Name:         name,
		Description:  input.Description,
		SystemPrompt: input.SystemPrompt,
		Intent:       input.Intent,
		Cost:         input.Cost,
	})
	if err != nil {
		return "", err
	}
	h.Log.Infow("Tool created", "tool_id", id, "intent", input.Intent, "cost", input.Cost)
	return id, nil
}

type UpdateInput struct {
	Ctx          context.Context
	ID           string
	Name         string
	Description  string
	SystemPrompt string
}

// UpdateLogic edits descriptive fields only. Cost and intent are fixed at
// creation time.
func (h *ToolHandler) UpdateLogic(input *UpdateInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.Join(errors.New("tool name is required"), shared.ErrInvalidFields)
	}
	return h.Store.UpdateTool(input.Ctx, input.ID, input.Name, input.Description, input.SystemPrompt)
}

func (h *ToolHandler) DeleteLogic(ctx context.Context, id string) error {
	return h.Store.DeleteTool(ctx, id)
}
