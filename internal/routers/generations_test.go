package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"scriptura-api/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Every generation route, the daily verse included, sits behind the bearer
// key middleware.
func TestGenerationRoutesRequireAuth(t *testing.T) {
	log := zap.NewNop().Sugar()
	e := echo.New()
	base := e.Group("")
	base.Use(middleware.NewTrackMiddleware(log))

	middleware.InitUserMiddleware(redis.NewClient(&redis.Options{}), nil, log)
	require.NoError(t, RegisterGenerationRoutes(base, nil, nil, redis.NewClient(&redis.Options{}), GenerationRouterConfig{}, log))

	paths := []string{
		"/v1/generations",
		"/v1/analytics",
		"/v1/verse/daily",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
