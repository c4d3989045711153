package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"scriptura-api/internal/shared"
)

// Store bundles the write and read connections behind methods so handlers
// can depend on the narrow slice of it they need instead of raw handles.
type Store struct {
	WDB *sql.DB
	RDB *sql.DB
}

func NewStore(wdb, rdb *sql.DB) *Store {
	return &Store{WDB: wdb, RDB: rdb}
}

func (s *Store) DebitCredits(ctx context.Context, userID string, cost uint64) error {
	return DebitCredits(ctx, s.WDB, userID, cost)
}

func (s *Store) RefundCredits(ctx context.Context, userID string, cost uint64) error {
	return RefundCredits(ctx, s.WDB, userID, cost)
}

func (s *Store) GetCredits(ctx context.Context, userID string) (uint64, error) {
	return GetCredits(ctx, s.RDB, userID)
}

func (s *Store) InsertGeneration(ctx context.Context, userID, toolID string, data json.RawMessage) (string, error) {
	return InsertGeneration(ctx, s.WDB, userID, toolID, data)
}

func (s *Store) DeleteGeneration(ctx context.Context, id, ownerID string) error {
	return DeleteGeneration(ctx, s.WDB, id, ownerID)
}

func (s *Store) GetGeneration(ctx context.Context, id, ownerID string) (*shared.Generation, error) {
	return GetGeneration(ctx, s.RDB, id, ownerID)
}

func (s *Store) ListGenerations(ctx context.Context, userID, toolID string, limit int) ([]shared.Generation, error) {
	return ListGenerations(ctx, s.RDB, userID, toolID, limit)
}

func (s *Store) CountGenerationsByTool(ctx context.Context, userID string) (map[string]uint64, error) {
	return CountGenerationsByTool(ctx, s.RDB, userID)
}

func (s *Store) GetToolByIntent(ctx context.Context, intent string) (*shared.Tool, error) {
	return GetToolByIntent(ctx, s.RDB, intent)
}

func (s *Store) ListTools(ctx context.Context) ([]shared.Tool, error) {
	return ListTools(ctx, s.RDB)
}

func (s *Store) CreateTool(ctx context.Context, tool *shared.Tool) (string, error) {
	return CreateTool(ctx, s.WDB, tool)
}

func (s *Store) UpdateTool(ctx context.Context, id, name, description, systemPrompt string) error {
	return UpdateTool(ctx, s.WDB, id, name, description, systemPrompt)
}

func (s *Store) DeleteTool(ctx context.Context, id string) error {
	return DeleteTool(ctx, s.WDB, id)
}

func (s *Store) CreateUser(ctx context.Context, externalID, name, email, role string) (*User, string, error) {
	return CreateUser(ctx, s.WDB, externalID, name, email, role)
}

func (s *Store) GetUser(ctx context.Context, id string) (*User, error) {
	return GetUser(ctx, s.RDB, id)
}

func (s *Store) UpdateUserProfile(ctx context.Context, id, name, role string) error {
	return UpdateUserProfile(ctx, s.WDB, id, name, role)
}

func (s *Store) InsertWaitlistEmail(ctx context.Context, email string) error {
	return InsertWaitlistEmail(ctx, s.WDB, email)
}
