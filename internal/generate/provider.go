// Package generate implements the structured generation provider client. The
// provider is an OpenAI-compatible chat completions endpoint asked for a JSON
// object matching a per-tool schema. It is treated as fallible and possibly
// slow; callers get exactly one attempt and compensate on failure.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scriptura-api/internal/shared"

	"go.uber.org/zap"
)

// Request is one structured generation call.
type Request struct {
	SystemPrompt string
	Prompt       string
	SchemaName   string
	Schema       json.RawMessage
	Temperature  float32
}

type Provider struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

func NewProvider(endpoint, apiKey, model string, timeout time.Duration, log *zap.SugaredLogger) *Provider {
	if timeout <= 0 {
		timeout = shared.DefaultRequestTimeout
	}
	return &Provider{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type completionBody struct {
	Model          string               `json:"model"`
	Messages       []shared.ChatMessage `json:"messages"`
	Temperature    float32              `json:"temperature,omitempty"`
	ResponseFormat *responseFormat      `json:"response_format"`
}

type responseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Schema json.RawMessage `json:"schema"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate asks the provider for a structured object. A response whose
// content is missing or is not a JSON object is reported as
// shared.ErrNoObjectGenerated so callers can trigger the credit refund.
func (p *Provider) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	body, err := json.Marshal(completionBody{
		Model: p.model,
		Messages: []shared.ChatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchema{
				Name:   req.SchemaName,
				Strict: true,
				Schema: req.Schema,
			},
		},
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed building provider request body"), err)
	}

	r, err := http.NewRequestWithContext(ctx, "POST", p.endpoint+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, errors.Join(errors.New("failed building provider request"), err)
	}
	r.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		r.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	res, err := p.httpClient.Do(r)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Join(shared.ErrProviderContext, ctx.Err())
		}
		return nil, errors.Join(shared.ErrFailedProviderReq, err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			p.log.Warnw("Failed to close provider response body", "error", closeErr)
		}
	}()

	if res.StatusCode != http.StatusOK {
		resBody, _ := io.ReadAll(res.Body)
		return nil, errors.Join(
			fmt.Errorf("provider returned error: [%d: %s]", res.StatusCode, string(resBody)),
			shared.ErrFailedProviderFromCode,
		)
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Join(shared.ErrFailedReadingResponse, err)
	}

	var completion completionResponse
	if err := json.Unmarshal(resBody, &completion); err != nil {
		return nil, errors.Join(shared.ErrFailedReadingResponse, err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.Join(errors.New("provider returned no choices"), shared.ErrNoObjectGenerated)
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return nil, errors.Join(errors.New("provider returned empty content"), shared.ErrNoObjectGenerated)
	}

	// Content must be a JSON object matching the tool schema. Anything else
	// counts as no object produced.
	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &object); err != nil {
		return nil, errors.Join(errors.New("provider content is not a JSON object"), shared.ErrNoObjectGenerated, err)
	}

	return json.RawMessage(content), nil
}
