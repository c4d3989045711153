package database

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"scriptura-api/internal/shared"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertGenerationReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO generation").
		WithArgs(sqlmock.AnyArg(), "user-1", "tool-1", []byte(`{"ok":true}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := InsertGeneration(context.Background(), db, "user-1", "tool-1", json.RawMessage(`{"ok":true}`))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteGenerationOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM generation WHERE id = \\? AND user_id = \\?").
		WithArgs("gen-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, DeleteGeneration(context.Background(), db, "gen-1", "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteGenerationNotOwnedIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Same statement shape: a wrong owner simply matches zero rows.
	mock.ExpectExec("DELETE FROM generation WHERE id = \\? AND user_id = \\?").
		WithArgs("gen-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = DeleteGeneration(context.Background(), db, "gen-1", "intruder")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestGetGenerationScopedToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Now().UTC()
	mock.ExpectQuery("SELECT id, user_id, tool_id, data, created_at FROM generation WHERE id = \\? AND user_id = \\?").
		WithArgs("gen-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tool_id", "data", "created_at"}).
			AddRow("gen-1", "user-1", "tool-1", []byte(`{"title":"Jonah"}`), created))

	gen, err := GetGeneration(context.Background(), db, "gen-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "gen-1", gen.ID)
	assert.JSONEq(t, `{"title":"Jonah"}`, string(gen.Data))
}

func TestListGenerationsNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, user_id, tool_id, data, created_at FROM generation WHERE user_id = \\? ORDER BY created_at DESC LIMIT \\?").
		WithArgs("user-1", shared.DefaultHistoryLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tool_id", "data", "created_at"}).
			AddRow("gen-2", "user-1", "tool-1", []byte(`{}`), now).
			AddRow("gen-1", "user-1", "tool-1", []byte(`{}`), now.Add(-time.Hour)))

	generations, err := ListGenerations(context.Background(), db, "user-1", "", 0)
	require.NoError(t, err)
	require.Len(t, generations, 2)
	assert.Equal(t, "gen-2", generations[0].ID)
}

func TestListGenerationsFilteredByTool(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id, tool_id, data, created_at FROM generation WHERE user_id = \\? AND tool_id = \\? ORDER BY created_at DESC LIMIT \\?").
		WithArgs("user-1", "tool-2", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tool_id", "data", "created_at"}))

	generations, err := ListGenerations(context.Background(), db, "user-1", "tool-2", 5)
	require.NoError(t, err)
	assert.Empty(t, generations)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountGenerationsByTool(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT tool.intent, COUNT\\(generation.id\\)").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"intent", "count"}).
			AddRow("simplify-bible-story", 3).
			AddRow("simplify-bible-verse", 1))

	counts, err := CountGenerationsByTool(context.Background(), db, "user-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]uint64{
		"simplify-bible-story": 3,
		"simplify-bible-verse": 1,
	}, counts)
}
