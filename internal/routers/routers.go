// Package routers
package routers

import (
	"errors"
	"io"

	"scriptura-api/internal/ctx"
	"scriptura-api/internal/shared"
)

func readRequestBody(c *ctx.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		c.Log.Errorw("Failed to read request body", "error", err.Error())
		return nil, err
	}
	return body, nil
}

// failureJSON converts any handler error into the structured
// {success, message} contract. The user never sees a raw error chain; the
// chain still lands in the request log via LogValues.
func failureJSON(c *ctx.Context, err error) error {
	c.LogValues.AddError(err)
	var rerr *shared.RequestError
	if errors.As(err, &rerr) {
		if rerr.StatusCode >= 500 {
			c.LogValues.LogLevel = "ERROR"
		}
		return c.JSON(rerr.StatusCode, shared.Result{Success: false, Message: rerr.Err.Error()})
	}
	c.LogValues.LogLevel = "ERROR"
	return c.JSON(shared.ErrInternalServerError.StatusCode,
		shared.Result{Success: false, Message: shared.ErrInternalServerError.Err.Error()})
}
