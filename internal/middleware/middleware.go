// Package middleware defines the request tracking, recovery, and
// authentication middleware chain.
package middleware

import (
	"fmt"
	"time"

	"scriptura-api/internal/ctx"
	"scriptura-api/internal/metrics"
	"scriptura-api/internal/shared"

	"github.com/aidarkhanov/nanoid"
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func NewTrackMiddleware(log *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID, _ := nanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 28)
			logger := log.With(
				"request_id", "req_"+reqID,
			)

			logValues := &ctx.ContextLogValues{
				RequestID: "req_" + reqID,
				StartTime: time.Now(),
				Path:      c.Path(),
			}
			cc := &ctx.Context{Context: c, Log: logger, Reqid: reqID, LogValues: logValues}
			err := next(cc)
			logValues.RequestDuration = time.Since(logValues.StartTime)
			logValues.StatusCode = cc.Response().Status

			switch logValues.LogLevel {
			case "ERROR":
				cc.Log.Errorw("end_of_request", "request", logValues)
			default:
				cc.Log.Infow("end_of_request", "request", logValues)
			}
			metrics.ResponseCodes.WithLabelValues(cc.Path(), fmt.Sprintf("%d", cc.Response().Status)).Inc()
			return err
		}
	}
}

func NewRecoverMiddleware(log *zap.SugaredLogger) echo.MiddlewareFunc {
	return emw.RecoverWithConfig(emw.RecoverConfig{
		StackSize: 1 << 10, // 1 KB
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			defer func() {
				_ = log.Sync()
			}()
			log.Errorw("Api Panic", "error", err.Error())
			return c.String(500, shared.ErrInternalServerError.Err.Error())
		},
	})
}
