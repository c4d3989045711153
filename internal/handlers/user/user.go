// Package user implements profile and sign-up logic. Identity verification
// itself belongs to the external provider; this package only manages the
// local user row it maps to.
package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"scriptura-api/internal/database"
	"scriptura-api/internal/shared"

	"go.uber.org/zap"
)

var validRoles = map[string]bool{
	"student": true,
	"adult":   true,
	"teacher": true,
}

type Store interface {
	CreateUser(ctx context.Context, externalID, name, email, role string) (*database.User, string, error)
	GetUser(ctx context.Context, id string) (*database.User, error)
	UpdateUserProfile(ctx context.Context, id, name, role string) error
	InsertWaitlistEmail(ctx context.Context, email string) error
}

type UserHandler struct {
	Store Store
	Log   *zap.SugaredLogger
}

func NewUserHandler(store Store, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{Store: store, Log: log}
}

// CreateInput carries the identity the external provider verified plus the
// sign-up form fields.
type CreateInput struct {
	Ctx        context.Context
	ExternalID string
	Name       string
	Email      string
	Role       string
}

// CreateLogic creates the user row and returns it together with the freshly
// issued API key. The key is shown exactly once, in this response.
func (h *UserHandler) CreateLogic(input *CreateInput) (*database.User, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, "", errors.Join(errors.New("name is required"), shared.ErrInvalidFields)
	}
	if strings.TrimSpace(input.ExternalID) == "" {
		return nil, "", errors.Join(errors.New("external id is required"), shared.ErrInvalidFields)
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, "", errors.Join(errors.New("invalid email"), shared.ErrInvalidFields)
	}
	if !validRoles[input.Role] {
		return nil, "", errors.Join(errors.New("invalid role"), shared.ErrInvalidFields)
	}

	created, apiKey, err := h.Store.CreateUser(input.Ctx, input.ExternalID, name, input.Email, input.Role)
	if err != nil {
		return nil, "", err
	}
	h.Log.Infow("User created", "user_id", created.ID, "credits", created.Credits)
	return created, apiKey, nil
}

type ProfileInput struct {
	Ctx    context.Context
	UserID string
}

func (h *UserHandler) ProfileLogic(input *ProfileInput) (*database.User, error) {
	return h.Store.GetUser(input.Ctx, input.UserID)
}

type UpdateProfileInput struct {
	Ctx    context.Context
	UserID string
	Name   string
	Role   string
}

func (h *UserHandler) UpdateProfileLogic(input *UpdateProfileInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return errors.Join(errors.New("name is required"), shared.ErrInvalidFields)
	}
	if !validRoles[input.Role] {
		return errors.Join(errors.New("invalid role"), shared.ErrInvalidFields)
	}
	return h.Store.UpdateUserProfile(input.Ctx, input.UserID, name, input.Role)
}

type WaitlistInput struct {
	Ctx   context.Context
	Email string
}

func (h *UserHandler) WaitlistLogic(input *WaitlistInput) error {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return errors.Join(errors.New("invalid email"), shared.ErrInvalidFields)
	}
	return h.Store.InsertWaitlistEmail(input.Ctx, input.Email)
}
