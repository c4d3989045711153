// Package verse serves the unmetered daily Bible verse. One verse is
// generated per calendar day and cached in Redis until midnight UTC so every
// caller that day sees the same verse.
package verse

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"scriptura-api/internal/generate"
	"scriptura-api/internal/metrics"
	"scriptura-api/internal/shared"
	"scriptura-api/internal/tools"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Generator interface {
	Generate(ctx context.Context, req generate.Request) (json.RawMessage, error)
}

// Cache is the slice of the Redis client the daily verse needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type VerseHandler struct {
	Cache    Cache
	Provider Generator
	Log      *zap.SugaredLogger

	// now is swapped in tests to pin the cache day.
	now func() time.Time
}

func NewVerseHandler(cache Cache, provider Generator, log *zap.SugaredLogger) *VerseHandler {
	return &VerseHandler{
		Cache:    cache,
		Provider: provider,
		Log:      log,
		now:      time.Now,
	}
}

// DailyVerseKey returns the cache key for the given moment's calendar day.
func DailyVerseKey(t time.Time) string {
	return shared.DailyVerseCachePrefix + t.UTC().Format("2006-01-02")
}

// TTLUntilMidnight returns how long a verse cached at t should live.
func TTLUntilMidnight(t time.Time) time.Duration {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return midnight.Sub(t)
}

// DailyVerseLogic returns today's verse, generating and caching it on a miss.
// No credits are involved; failures surface as a structured error only.
func (h *VerseHandler) DailyVerseLogic(ctx context.Context) (json.RawMessage, error) {
	now := h.now()
	cacheKey := DailyVerseKey(now)

	cached, err := h.Cache.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		metrics.DailyVerseCacheHits.WithLabelValues("hit").Inc()
		return json.RawMessage(cached), nil
	}
	if err != nil && err != redis.Nil {
		h.Log.Warnw("Daily verse cache read failed, regenerating", "error", err)
	}
	metrics.DailyVerseCacheHits.WithLabelValues("miss").Inc()

	verse, err := h.Provider.Generate(ctx, generate.Request{
		SystemPrompt: tools.DailyBibleVerseSystemPrompt,
		Prompt:       tools.DailyBibleVersePrompt,
		SchemaName:   "daily_bible_verse",
		Schema:       tools.DailyVerseResponseSchema,
		Temperature:  0.8,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed generating daily verse"), err, shared.ErrGenerationFailed)
	}

	if err := h.Cache.Set(ctx, cacheKey, []byte(verse), TTLUntilMidnight(now)).Err(); err != nil {
		// A failed cache write only means extra provider calls today.
		h.Log.Warnw("Failed caching daily verse", "error", err, "key", cacheKey)
	}

	return verse, nil
}
