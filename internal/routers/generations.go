package routers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"scriptura-api/internal/ctx"
	"scriptura-api/internal/database"
	"scriptura-api/internal/generate"
	"scriptura-api/internal/handlers/generation"
	"scriptura-api/internal/handlers/verse"
	"scriptura-api/internal/middleware"
	"scriptura-api/internal/shared"
	"scriptura-api/internal/tools"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type GenerationRouter struct {
	gh *generation.GenerationHandler
	vh *verse.VerseHandler
}

type GenerationRouterConfig struct {
	ProviderEndpoint string
	ProviderAPIKey   string
	ProviderModel    string
}

func RegisterGenerationRoutes(e *echo.Group, wdb *sql.DB, rdb *sql.DB, redisClient *redis.Client, cfg GenerationRouterConfig, log *zap.SugaredLogger) error {
	umw, err := middleware.GetUserMiddleware()
	if err != nil {
		return err
	}

	registry := tools.NewRegistry()
	store := database.NewStore(wdb, rdb)
	provider := generate.NewProvider(cfg.ProviderEndpoint, cfg.ProviderAPIKey, cfg.ProviderModel, shared.DefaultRequestTimeout, log)

	gr := &GenerationRouter{
		gh: generation.NewGenerationHandler(store, provider, registry, log),
		vh: verse.NewVerseHandler(redisClient, provider, log),
	}

	v1 := e.Group("v1")
	requireUser := v1.Group("", umw.ExtractUser, umw.RequireUser)

	requireUser.POST("/generations", gr.Generate)
	requireUser.GET("/generations", gr.History)
	requireUser.GET("/generations/:id", gr.GetGeneration)
	requireUser.DELETE("/generations/:id", gr.DeleteGeneration)
	requireUser.GET("/analytics", gr.Analytics)
	requireUser.GET("/verse/daily", gr.DailyVerse)

	return nil
}

type GenerateRequest struct {
	Intent string            `json:"intent"`
	Fields map[string]string `json:"fields"`
}

func (gr *GenerationRouter) Generate(cc echo.Context) error {
	c := cc.(*ctx.Context)

	body, err := readRequestBody(c)
	if err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to read request body"), shared.ErrInvalidRequest))
	}

	var req GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return failureJSON(c, errors.Join(errors.New("failed to unmarshal req body"), err, shared.ErrInvalidRequest))
	}

	output, err := gr.gh.GenerateLogic(&generation.GenerateInput{
		Ctx:    c.Request().Context(),
		User:   *c.User,
		Intent: req.Intent,
		Fields: req.Fields,
	})
	if err != nil {
		return failureJSON(c, err)
	}

	c.LogValues.GenerationInfo = &ctx.GenerationInfo{
		Intent:       output.Intent,
		ToolID:       output.ToolID,
		GenerationID: output.GenerationID,
		Cost:         output.Cost,
		Duration:     output.Duration,
	}

	return c.JSON(http.StatusOK, shared.Result{
		Success: true,
		Message: output.Message,
		ID:      output.GenerationID,
	})
}

func (gr *GenerationRouter) DeleteGeneration(cc echo.Context) error {
	c := cc.(*ctx.Context)

	err := gr.gh.DeleteLogic(&generation.DeleteInput{
		Ctx:          c.Request().Context(),
		UserID:       c.User.UserID,
		GenerationID: c.Param("id"),
	})
	if err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, shared.Result{Success: true, Message: "Generation Deleted"})
}

func (gr *GenerationRouter) GetGeneration(cc echo.Context) error {
	c := cc.(*ctx.Context)

	gen, err := gr.gh.GetLogic(&generation.GetInput{
		Ctx:          c.Request().Context(),
		UserID:       c.User.UserID,
		GenerationID: c.Param("id"),
	})
	if err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, gen)
}

func (gr *GenerationRouter) History(cc echo.Context) error {
	c := cc.(*ctx.Context)

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return failureJSON(c, errors.Join(errors.New("invalid limit"), shared.ErrBadRequest))
		}
		limit = parsed
	}

	generations, err := gr.gh.HistoryLogic(&generation.HistoryInput{
		Ctx:    c.Request().Context(),
		UserID: c.User.UserID,
		Intent: c.QueryParam("intent"),
		Limit:  limit,
	})
	if err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": generations})
}

func (gr *GenerationRouter) Analytics(cc echo.Context) error {
	c := cc.(*ctx.Context)

	counts, err := gr.gh.AnalyticsLogic(&generation.AnalyticsInput{
		Ctx:    c.Request().Context(),
		UserID: c.User.UserID,
	})
	if err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": counts})
}

func (gr *GenerationRouter) DailyVerse(cc echo.Context) error {
	c := cc.(*ctx.Context)

	verseData, err := gr.vh.DailyVerseLogic(c.Request().Context())
	if err != nil {
		return failureJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": verseData})
}
