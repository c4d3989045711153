package tools

import (
	"encoding/json"
	"errors"
	"testing"

	"scriptura-api/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookupUnknownIntent(t *testing.T) {
	r := NewRegistry()

	_, err := r.Lookup("summarize-psalms")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUnknownIntent))
}

func TestRegistryIntents(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{
		shared.IntentSimplifyBibleStory,
		shared.IntentSimplifyBibleVerse,
	}, r.Intents())
}

func TestStoryValidate(t *testing.T) {
	r := NewRegistry()
	entry, err := r.Lookup(shared.IntentSimplifyBibleStory)
	require.NoError(t, err)

	tests := []struct {
		name    string
		fields  map[string]string
		wantErr bool
	}{
		{"valid", map[string]string{"title": "David and Goliath", "ageGroup": "children"}, false},
		{"valid with references", map[string]string{"title": "Jonah", "ageGroup": "adults", "originalReferences": "Jonah 1-4"}, false},
		{"missing title", map[string]string{"ageGroup": "children"}, true},
		{"blank title", map[string]string{"title": "   ", "ageGroup": "children"}, true},
		{"missing age group", map[string]string{"title": "Jonah"}, true},
		{"invalid age group", map[string]string{"title": "Jonah", "ageGroup": "elders"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validated, err := entry.Validate(tt.fields)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, shared.ErrInvalidFields))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, validated["title"])
			assert.NotEmpty(t, validated["ageGroup"])
		})
	}
}

func TestStoryValidateTrimsAndDropsEmptyReferences(t *testing.T) {
	r := NewRegistry()
	entry, err := r.Lookup(shared.IntentSimplifyBibleStory)
	require.NoError(t, err)

	validated, err := entry.Validate(map[string]string{
		"title":              "  Noah's Ark  ",
		"ageGroup":           "teenagers",
		"originalReferences": "   ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Noah's Ark", validated["title"])
	_, hasRefs := validated["originalReferences"]
	assert.False(t, hasRefs)
}

func TestVerseValidate(t *testing.T) {
	r := NewRegistry()
	entry, err := r.Lookup(shared.IntentSimplifyBibleVerse)
	require.NoError(t, err)

	_, err = entry.Validate(map[string]string{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidFields))

	validated, err := entry.Validate(map[string]string{"feeling": "anxious"})
	require.NoError(t, err)
	assert.Equal(t, "anxious", validated["feeling"])

	validated, err = entry.Validate(map[string]string{"feeling": "anxious", "bibleVerseReference": "Philippians 4:6"})
	require.NoError(t, err)
	assert.Equal(t, "Philippians 4:6", validated["bibleVerseReference"])
}

func TestBuildPromptIncludesFields(t *testing.T) {
	r := NewRegistry()

	storyEntry, err := r.Lookup(shared.IntentSimplifyBibleStory)
	require.NoError(t, err)
	prompt := storyEntry.BuildPrompt(map[string]string{"title": "David and Goliath", "ageGroup": "children"})
	assert.Contains(t, prompt, "David and Goliath")
	assert.Contains(t, prompt, "children")

	verseEntry, err := r.Lookup(shared.IntentSimplifyBibleVerse)
	require.NoError(t, err)
	prompt = verseEntry.BuildPrompt(map[string]string{"feeling": "anxious"})
	assert.Contains(t, prompt, "anxious")
	assert.NotContains(t, prompt, "verse reference")

	prompt = verseEntry.BuildPrompt(map[string]string{"feeling": "anxious", "bibleVerseReference": "Philippians 4:6"})
	assert.Contains(t, prompt, "Philippians 4:6")
}

func TestResponseSchemasAreValidJSON(t *testing.T) {
	r := NewRegistry()

	for _, intent := range r.Intents() {
		entry, err := r.Lookup(intent)
		require.NoError(t, err)

		var schema map[string]any
		require.NoError(t, json.Unmarshal(entry.ResponseSchema, &schema), "schema for %s", intent)
		assert.Equal(t, "object", schema["type"])
		assert.NotEmpty(t, entry.SchemaName)
		assert.NotEmpty(t, entry.DefaultSystemPrompt)
	}

	var daily map[string]any
	require.NoError(t, json.Unmarshal(DailyVerseResponseSchema, &daily))
	assert.Equal(t, "object", daily["type"])
}
