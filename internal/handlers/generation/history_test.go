package generation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"scriptura-api/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGeneration(t *testing.T, store *fakeStore, userID, toolID string) string {
	t.Helper()
	id, err := store.InsertGeneration(context.Background(), userID, toolID, json.RawMessage(`{}`))
	require.NoError(t, err)
	return id
}

func TestDeleteLogicRemovesOwnedGeneration(t *testing.T) {
	store := newFakeStore("user-1", 0)
	h := newHandler(store, &fakeProvider{})
	id := seedGeneration(t, store, "user-1", "tool-story")

	err := h.DeleteLogic(&DeleteInput{Ctx: context.Background(), UserID: "user-1", GenerationID: id})
	require.NoError(t, err)
	assert.Equal(t, 0, store.recordCount())
}

func TestDeleteLogicNotOwnedIsNotFound(t *testing.T) {
	store := newFakeStore("user-1", 0)
	h := newHandler(store, &fakeProvider{})
	id := seedGeneration(t, store, "user-2", "tool-story")

	err := h.DeleteLogic(&DeleteInput{Ctx: context.Background(), UserID: "user-1", GenerationID: id})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.Equal(t, 1, store.recordCount())
}

func TestDeleteLogicBlankID(t *testing.T) {
	store := newFakeStore("user-1", 0)
	h := newHandler(store, &fakeProvider{})

	err := h.DeleteLogic(&DeleteInput{Ctx: context.Background(), UserID: "user-1", GenerationID: "  "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidFields))
}

func TestHistoryLogicFiltersByIntent(t *testing.T) {
	store := newFakeStore("user-1", 0)
	h := newHandler(store, &fakeProvider{})
	seedGeneration(t, store, "user-1", "tool-story")
	seedGeneration(t, store, "user-1", "tool-verse")
	seedGeneration(t, store, "user-2", "tool-story")

	all, err := h.HistoryLogic(&HistoryInput{Ctx: context.Background(), UserID: "user-1"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	stories, err := h.HistoryLogic(&HistoryInput{
		Ctx:    context.Background(),
		UserID: "user-1",
		Intent: shared.IntentSimplifyBibleStory,
	})
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "tool-story", stories[0].ToolID)
}

func TestHistoryLogicRejectsUnknownIntent(t *testing.T) {
	store := newFakeStore("user-1", 0)
	h := newHandler(store, &fakeProvider{})

	_, err := h.HistoryLogic(&HistoryInput{
		Ctx:    context.Background(),
		UserID: "user-1",
		Intent: "summarize-psalms",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUnknownIntent))
}

func TestAnalyticsLogicZeroFillsIntents(t *testing.T) {
	store := newFakeStore("user-1", 0)
	h := newHandler(store, &fakeProvider{})
	seedGeneration(t, store, "user-1", "tool-story")
	seedGeneration(t, store, "user-1", "tool-story")

	counts, err := h.AnalyticsLogic(&AnalyticsInput{Ctx: context.Background(), UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), counts[shared.IntentSimplifyBibleStory])
	assert.Equal(t, uint64(0), counts[shared.IntentSimplifyBibleVerse])
}
