package routers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"scriptura-api/internal/ctx"
	"scriptura-api/internal/database"
	toolHandler "scriptura-api/internal/handlers/tool"
	"scriptura-api/internal/middleware"
	"scriptura-api/internal/shared"
	"scriptura-api/internal/tools"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ToolRouter struct {
	th *toolHandler.ToolHandler
}

// RegisterToolRoutes exposes the catalog to signed-in users and its
// management to admins.
func RegisterToolRoutes(e *echo.Group, wdb *sql.DB, rdb *sql.DB, log *zap.SugaredLogger) error {
	umw, err := middleware.GetUserMiddleware()
	if err != nil {
		return err
	}

	store := database.NewStore(wdb, rdb)
	tr := &ToolRouter{th: toolHandler.NewToolHandler(store, tools.NewRegistry(), log)}

	v1 := e.Group("v1")
	requireUser := v1.Group("", umw.ExtractUser, umw.RequireUser)
	requireAdmin := v1.Group("", umw.ExtractUser, umw.RequireAdmin)

	requireUser.GET("/tools", tr.ListTools)
	requireAdmin.POST("/tools", tr.CreateTool)
	requireAdmin.PATCH("/tools/:id", tr.UpdateTool)
	requireAdmin.DELETE("/tools/:id", tr.DeleteTool)

	return nil
}

func (tr *ToolRouter) ListTools(cc echo.Context) error {
	c := cc.(*ctx.Context)

	catalog, err := tr.th.ListLogic(c.Request().Context())
	if err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": catalog})
}

type CreateToolRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"system_prompt"`
	Intent       string `json:"intent"`
	Cost         uint64 `json:"cost"`
}

func (tr *ToolRouter) CreateTool(cc echo.Context) error {
	c := cc.(*ctx.Context)

	body, err := readRequestBody(c)
	if err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to read request body"), shared.ErrInvalidRequest))
	}

	var req CreateToolRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to unmarshal req body"), err, shared.ErrInvalidRequest))
	}

	id, err := tr.th.CreateLogic(&toolHandler.CreateInput{
		Ctx:          c.Request().Context(),
		Name:         req.Name,
		Description:  req.Description,
		SystemPrompt: req.SystemPrompt,
		Intent:       req.Intent,
		Cost:         req.Cost,
	})
	if err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, shared.Result{Success: true, Message: "Tool created", ID: id})
}

type UpdateToolRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"system_prompt"`
}

func (tr *ToolRouter) UpdateTool(cc echo.Context) error {
	c := cc.(*ctx.Context)

	body, err := readRequestBody(c)
	if err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to read request body"), shared.ErrInvalidRequest))
	}

	var req UpdateToolRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to unmarshal req body"), err, shared.ErrInvalidRequest))
	}

	err = tr.th.UpdateLogic(&toolHandler.UpdateInput{
		Ctx:          c.Request().Context(),
		ID:           c.Param("id"),
		Name:         req.Name,
		Description:  req.Description,
		SystemPrompt: req.SystemPrompt,
	})
	if err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, shared.Result{Success: true, Message: "Tool updated"})
}

func (tr *ToolRouter) DeleteTool(cc echo.Context) error {
	c := cc.(*ctx.Context)

	if err := tr.th.DeleteLogic(c.Request().Context(), c.Param("id")); err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, shared.Result{Success: true, Message: "Tool deleted"})
}
