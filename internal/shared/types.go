package shared

import (
	"encoding/json"
	"time"
)

type UserMetadata struct {
	Email   string `json:"email,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Name    string `json:"name,omitempty"`
	Credits uint64 `json:"credits,omitempty"`
	Role    string `json:"role,omitempty"`
	APIKey  string `json:"-"`
}

// Tool is one row of the catalog: a named generation capability with a fixed
// credit cost and an intent key selecting its registry entry.
type Tool struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"-"`
	Intent       string `json:"intent"`
	Cost         uint64 `json:"cost"`
}

// Generation is an immutable record of one completed generation.
type Generation struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	ToolID    string          `json:"tool_id"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// Result is the transaction boundary contract: every outcome of a metered
// generation collapses into success plus a user facing message.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
