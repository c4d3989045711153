package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scriptura-api/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRequest() Request {
	return Request{
		SystemPrompt: "You are a helpful assistant.",
		Prompt:       "Generate something structured.",
		SchemaName:   "test_schema",
		Schema:       json.RawMessage(`{"type":"object","properties":{"ok":{"type":"boolean"}}}`),
	}
}

func completionWith(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(body)
}

func TestGenerateReturnsStructuredObject(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, completionWith(`{"ok": true}`))
	}))
	defer server.Close()

	p := NewProvider(server.URL, "test-key", "test-model", 5*time.Second, zap.NewNop().Sugar())
	object, err := p.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(object))

	// The provider must ask for the structured response format.
	var sent map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, "test-model", sent["model"])
	format, ok := sent["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
}

func TestGenerateEmptyContentIsNoObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionWith(""))
	}))
	defer server.Close()

	p := NewProvider(server.URL, "", "test-model", 5*time.Second, zap.NewNop().Sugar())
	_, err := p.Generate(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNoObjectGenerated))
}

func TestGenerateProseContentIsNoObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionWith("Here is a lovely story about Jonah."))
	}))
	defer server.Close()

	p := NewProvider(server.URL, "", "test-model", 5*time.Second, zap.NewNop().Sugar())
	_, err := p.Generate(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNoObjectGenerated))
}

func TestGenerateNoChoicesIsNoObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer server.Close()

	p := NewProvider(server.URL, "", "test-model", 5*time.Second, zap.NewNop().Sugar())
	_, err := p.Generate(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNoObjectGenerated))
}

func TestGenerateNon200IsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := NewProvider(server.URL, "", "test-model", 5*time.Second, zap.NewNop().Sugar())
	_, err := p.Generate(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrFailedProviderFromCode))
	assert.False(t, errors.Is(err, shared.ErrNoObjectGenerated))
}

func TestGenerateCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, completionWith(`{"ok": true}`))
	}))
	defer server.Close()

	p := NewProvider(server.URL, "", "test-model", 5*time.Second, zap.NewNop().Sugar())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Generate(ctx, testRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrProviderContext))
}
