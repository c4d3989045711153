package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"scriptura-api/internal/shared"

	"github.com/aidarkhanov/nanoid"
	"github.com/google/uuid"
)

const apiKeyAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

type User struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Credits    uint64    `json:"credits"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateUser inserts the local user row for an identity already verified by
// the external provider and issues its API key in the same transaction. A
// user row without a key can never authenticate, so the two inserts live or
// die together. New users start with the default credit grant.
func CreateUser(ctx context.Context, db *sql.DB, externalID, name, email, role string) (*User, string, error) {
	now := time.Now().UTC()
	user := &User{
		ID:         uuid.NewString(),
		ExternalID: externalID,
		Name:       name,
		Email:      email,
		Role:       role,
		Credits:    shared.DefaultCreditGrant,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	apiKey, err := nanoid.Generate(apiKeyAlphabet, shared.APIKeyLength)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate api key: %w", err)
	}

	err = ExecuteTransaction(ctx, db, []func(*sql.Tx) error{
		func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
		INSERT INTO user (id, external_id, name, email, role, credits, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				user.ID, user.ExternalID, user.Name, user.Email, user.Role, user.Credits, user.CreatedAt, user.UpdatedAt)
			return err
		},
		func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO api_key (id, user_id, created_at) VALUES (?, ?, ?)",
				apiKey, user.ID, now)
			return err
		},
	})
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, "", errors.Join(fmt.Errorf("email %s taken", email), shared.ErrEmailExists)
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}
	return user, apiKey, nil
}

// GetUser fetches a user row by internal id.
func GetUser(ctx context.Context, db *sql.DB, id string) (*User, error) {
	var user User
	err := db.QueryRowContext(ctx, `
		SELECT id, external_id, name, email, role, credits, created_at, updated_at
		FROM user WHERE id = ?`, id).Scan(
		&user.ID, &user.ExternalID, &user.Name, &user.Email,
		&user.Role, &user.Credits, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Join(fmt.Errorf("user %s not found", id), shared.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateUserProfile updates the mutable profile fields. Credits are never
// touched here; the metering path owns the balance.
func UpdateUserProfile(ctx context.Context, db *sql.DB, id, name, role string) error {
	res, err := db.ExecContext(ctx,
		"UPDATE user SET name = ?, role = ?, updated_at = ? WHERE id = ?",
		name, role, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read profile update result: %w", err)
	}
	if affected == 0 {
		return errors.Join(fmt.Errorf("user %s not found", id), shared.ErrNotFound)
	}
	return nil
}

// InsertWaitlistEmail records an email on the pre-launch waitlist.
func InsertWaitlistEmail(ctx context.Context, db *sql.DB, email string) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO waitlist (id, email, created_at) VALUES (?, ?, ?)",
		uuid.NewString(), email, time.Now().UTC())
	if err != nil {
		if isDuplicateEntry(err) {
			return errors.Join(fmt.Errorf("email %s already on waitlist", email), shared.ErrEmailExists)
		}
		return fmt.Errorf("failed to insert waitlist email: %w", err)
	}
	return nil
}

func isDuplicateEntry(err error) bool {
	// MySQL error 1062
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
