// Package generation implements the credit-metered generation transaction:
// validate, debit, generate, persist-or-refund. The debit must be durably
// committed before the provider is called, and the refund or persist step
// must complete before the outcome is reported.
package generation

import (
	"context"
	"encoding/json"
	"time"

	"scriptura-api/internal/generate"
	"scriptura-api/internal/shared"
	"scriptura-api/internal/tools"

	"go.uber.org/zap"
)

// Generator is the external structured generation capability.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) (json.RawMessage, error)
}

// Store is the slice of persistence the transaction needs.
type Store interface {
	DebitCredits(ctx context.Context, userID string, cost uint64) error
	RefundCredits(ctx context.Context, userID string, cost uint64) error
	InsertGeneration(ctx context.Context, userID, toolID string, data json.RawMessage) (string, error)
	DeleteGeneration(ctx context.Context, id, ownerID string) error
	GetGeneration(ctx context.Context, id, ownerID string) (*shared.Generation, error)
	ListGenerations(ctx context.Context, userID, toolID string, limit int) ([]shared.Generation, error)
	CountGenerationsByTool(ctx context.Context, userID string) (map[string]uint64, error)
	GetToolByIntent(ctx context.Context, intent string) (*shared.Tool, error)
}

type GenerationHandler struct {
	Store    Store
	Provider Generator
	Registry *tools.Registry
	Log      *zap.SugaredLogger

	// ProviderTimeout bounds the generation call. The call runs on a context
	// detached from the request so a caller disconnect after the debit cannot
	// strand the compensation path; the debit itself is still committed
	// before the provider is invoked, which makes a disconnect between those
	// two points a known, logged risk rather than a silent one.
	ProviderTimeout time.Duration
}

func NewGenerationHandler(store Store, provider Generator, registry *tools.Registry, log *zap.SugaredLogger) *GenerationHandler {
	return &GenerationHandler{
		Store:           store,
		Provider:        provider,
		Registry:        registry,
		Log:             log,
		ProviderTimeout: shared.DefaultRequestTimeout,
	}
}
