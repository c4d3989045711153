package database

import (
	"context"
	"errors"
	"testing"

	"scriptura-api/internal/shared"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserIssuesKeyInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO user").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO api_key").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, apiKey, err := CreateUser(context.Background(), db, "ext-1", "Ada", "ada@example.com", "adult")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, uint64(shared.DefaultCreditGrant), user.Credits)
	assert.Len(t, apiKey, shared.APIKeyLength)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmailRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO user").
		WillReturnError(errors.New("Error 1062: Duplicate entry 'ada@example.com' for key 'user_email_uq'"))
	mock.ExpectRollback()

	_, _, err = CreateUser(context.Background(), db, "ext-1", "Ada", "ada@example.com", "adult")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrEmailExists))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserKeyInsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// No committed user row may exist without its key.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO user").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO api_key").
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	_, _, err = CreateUser(context.Background(), db, "ext-1", "Ada", "ada@example.com", "adult")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
