package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scriptura-api/internal/generate"
	"scriptura-api/internal/metrics"
	"scriptura-api/internal/shared"

	"go.uber.org/zap"
)

// GenerateInput contains all data needed for the metered generation logic.
// The user identity is threaded explicitly instead of pulled from ambient
// request state.
type GenerateInput struct {
	Ctx    context.Context
	User   shared.UserMetadata
	Intent string
	Fields map[string]string
}

type GenerateOutput struct {
	GenerationID string
	Intent       string
	ToolID       string
	Cost         uint64
	Duration     time.Duration
	Message      string
}

// GenerateLogic runs one metered generation transaction. Every failure comes
// back joined with one of the shared sentinels so the router can collapse it
// into a structured success/message result; nothing propagates as a raw
// fault.
func (h *GenerationHandler) GenerateLogic(input *GenerateInput) (*GenerateOutput, error) {
	entry, err := h.Registry.Lookup(input.Intent)
	if err != nil {
		metrics.GenerationCount.WithLabelValues(input.Intent, "unknown_intent").Inc()
		return nil, err
	}

	// Step 1: validate. No credit is touched on failure.
	validated, err := entry.Validate(input.Fields)
	if err != nil {
		metrics.GenerationCount.WithLabelValues(input.Intent, "invalid_fields").Inc()
		return nil, err
	}

	tool, err := h.Store.GetToolByIntent(input.Ctx, input.Intent)
	if err != nil {
		return nil, errors.Join(errors.New("failed to resolve tool"), err)
	}

	log := h.Log.With("intent", input.Intent, "tool_id", tool.ID, "user_id", input.User.UserID)

	// Step 2: atomic conditional debit. Must be durably visible before the
	// provider call is issued.
	if err := h.Store.DebitCredits(input.Ctx, input.User.UserID, tool.Cost); err != nil {
		if errors.Is(err, shared.ErrInsufficientCredits) {
			metrics.InsufficientCredits.WithLabelValues(input.Intent).Inc()
			metrics.GenerationCount.WithLabelValues(input.Intent, "insufficient_credits").Inc()
			return nil, err
		}
		return nil, errors.Join(errors.New("failed debiting credits"), err, shared.ErrInternalServerError)
	}
	metrics.CreditsDebited.WithLabelValues(input.Intent).Add(float64(tool.Cost))

	// Step 3: generation. Detached from the request context so a client
	// disconnect cannot cancel the refund path with the debit committed.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(input.Ctx), h.ProviderTimeout)
	defer cancel()

	systemPrompt := tool.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = entry.DefaultSystemPrompt
	}

	start := time.Now()
	payload, genErr := h.Provider.Generate(pctx, generate.Request{
		SystemPrompt: systemPrompt,
		Prompt:       entry.BuildPrompt(validated),
		SchemaName:   entry.SchemaName,
		Schema:       entry.ResponseSchema,
		Temperature:  entry.Temperature,
	})
	duration := time.Since(start)
	metrics.GenerationDuration.WithLabelValues(input.Intent).Observe(duration.Seconds())

	// The refund and the insert get their own write budget. The provider
	// deadline is often already spent when the provider fails by timing out,
	// and an expired context must not be able to veto either write.
	wctx, wcancel := context.WithTimeout(context.WithoutCancel(input.Ctx), shared.DefaultWriteTimeout)
	defer wcancel()

	if genErr != nil {
		return nil, h.compensate(wctx, log, input, tool.Cost, genErr)
	}

	// Step 4: persist. An insert failure here leaves the debit standing; the
	// user sees a generic failure and the row is reconciled by hand. See the
	// design notes before changing this.
	generationID, err := h.Store.InsertGeneration(wctx, input.User.UserID, tool.ID, payload)
	if err != nil {
		metrics.GenerationCount.WithLabelValues(input.Intent, "persist_error").Inc()
		log.Errorw("Generation succeeded but persistence failed, debit stands",
			"error", err, "cost", tool.Cost)
		return nil, errors.Join(errors.New("failed persisting generation"), err, shared.ErrPersistFailed)
	}

	metrics.GenerationCount.WithLabelValues(input.Intent, "success").Inc()
	return &GenerateOutput{
		GenerationID: generationID,
		Intent:       input.Intent,
		ToolID:       tool.ID,
		Cost:         tool.Cost,
		Duration:     duration,
		Message:      "Generation successful",
	}, nil
}

// compensate reverses the debit after a provider failure. A refund write
// failure is fatal: it is reported distinctly and logged loudly enough for
// manual reconciliation, with no automatic retry.
func (h *GenerationHandler) compensate(ctx context.Context, log *zap.SugaredLogger, input *GenerateInput, cost uint64, genErr error) error {
	metrics.GenerationCount.WithLabelValues(input.Intent, "provider_error").Inc()
	log.Warnw("Provider failed, refunding debit", "error", genErr, "cost", cost)

	if refundErr := h.Store.RefundCredits(ctx, input.User.UserID, cost); refundErr != nil {
		metrics.RefundFailures.WithLabelValues(input.Intent).Inc()
		log.Errorw("RECONCILE: refund failed after provider failure",
			"user_id", input.User.UserID,
			"cost", cost,
			"refund_error", refundErr,
			"provider_error", genErr,
		)
		return errors.Join(fmt.Errorf("refund of %d credits failed", cost), refundErr, genErr, shared.ErrRefundFailed)
	}

	metrics.CreditsRefunded.WithLabelValues(input.Intent).Add(float64(cost))
	return errors.Join(genErr, shared.ErrGenerationFailed)
}
