package routers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"scriptura-api/internal/ctx"
	"scriptura-api/internal/database"
	userHandler "scriptura-api/internal/handlers/user"
	"scriptura-api/internal/middleware"
	"scriptura-api/internal/shared"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UserRouter struct {
	uh *userHandler.UserHandler
}

func RegisterUserRoutes(e *echo.Group, wdb *sql.DB, rdb *sql.DB, log *zap.SugaredLogger) error {
	umw, err := middleware.GetUserMiddleware()
	if err != nil {
		return err
	}

	store := database.NewStore(wdb, rdb)
	ur := &UserRouter{uh: userHandler.NewUserHandler(store, log)}

	v1 := e.Group("v1")
	requireUser := v1.Group("", umw.ExtractUser, umw.RequireUser)
	requireAdmin := v1.Group("", umw.ExtractUser, umw.RequireAdmin)

	requireUser.GET("/user", ur.Profile)
	requireUser.PATCH("/user", ur.UpdateProfile)
	// Sign-up completion is driven by the identity provider's callback, which
	// authenticates with an admin key.
	requireAdmin.POST("/users", ur.CreateUser)
	v1.POST("/waitlist", ur.JoinWaitlist)

	return nil
}

func (ur *UserRouter) Profile(cc echo.Context) error {
	c := cc.(*ctx.Context)

	profile, err := ur.uh.ProfileLogic(&userHandler.ProfileInput{
		Ctx:    c.Request().Context(),
		UserID: c.User.UserID,
	})
	if err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func (ur *UserRouter) UpdateProfile(cc echo.Context) error {
	c := cc.(*ctx.Context)

	body, err := readRequestBody(c)
	if err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to read request body"), shared.ErrInvalidRequest))
	}

	var req UpdateProfileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to unmarshal req body"), err, shared.ErrInvalidRequest))
	}

	err = ur.uh.UpdateProfileLogic(&userHandler.UpdateProfileInput{
		Ctx:    c.Request().Context(),
		UserID: c.User.UserID,
		Name:   req.Name,
		Role:   req.Role,
	})
	if err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, shared.Result{Success: true, Message: "Profile updated"})
}

type CreateUserRequest struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

// CreateUserResponse carries the issued API key alongside the usual result.
// The key is only ever returned here.
type CreateUserResponse struct {
	shared.Result
	APIKey string `json:"api_key"`
}

func (ur *UserRouter) CreateUser(cc echo.Context) error {
	c := cc.(*ctx.Context)

	body, err := readRequestBody(c)
	if err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to read request body"), shared.ErrInvalidRequest))
	}

	var req CreateUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to unmarshal req body"), err, shared.ErrInvalidRequest))
	}

	created, apiKey, err := ur.uh.CreateLogic(&userHandler.CreateInput{
		Ctx:        c.Request().Context(),
		ExternalID: req.ExternalID,
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
	})
	if err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, CreateUserResponse{
		Result: shared.Result{Success: true, Message: "Account Successfully Created", ID: created.ID},
		APIKey: apiKey,
	})
}

type WaitlistRequest struct {
	Email string `json:"email"`
}

func (ur *UserRouter) JoinWaitlist(cc echo.Context) error {
	c := cc.(*ctx.Context)

	body, err := readRequestBody(c)
	if err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to read request body"), shared.ErrInvalidRequest))
	}

	var req WaitlistRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to unmarshal req body"), err, shared.ErrInvalidRequest))
	}

	if err := ur.uh.WaitlistLogic(&userHandler.WaitlistInput{
		Ctx:   c.Request().Context(),
		Email: req.Email,
	}); err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, shared.Result{Success: true, Message: "Added to waitlist"})
}
