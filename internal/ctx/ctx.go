// Package ctx
package ctx

import (
	"fmt"
	"time"

	"scriptura-api/internal/shared"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextLogValues should only be accessed for logging, and not for
// actual business logic, or any other logic
type ContextLogValues struct {
	// Added in base middleware
	RequestID       string
	StartTime       time.Time
	StatusCode      int
	RequestDuration time.Duration
	Path            string

	// Added in user middleware
	UserID  string
	Credits uint64
	Role    string

	// Added by the generation transaction
	GenerationInfo *GenerationInfo

	// Override log Log Level
	// useful where a status code might be sent before post processing errors occur
	LogLevel string

	// Added dynamically
	Error error
}

type GenerationInfo struct {
	Intent       string
	ToolID       string
	GenerationID string
	Cost         uint64
	Duration     time.Duration
}

// AddError adds errors to the error chain. Always add errors, even if only warnings.
// Log level is determined by the status code of the request
func (c *ContextLogValues) AddError(err error) {
	if c.Error == nil {
		c.Error = err
		return
	}
	c.Error = fmt.Errorf("%w: %w", err, c.Error)
}

func (c *ContextLogValues) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if c.UserID != "" {
		enc.AddString("user_id", c.UserID)
		enc.AddUint64("credits", c.Credits)
		enc.AddString("role", c.Role)
	}
	if c.GenerationInfo != nil {
		enc.AddString("intent", c.GenerationInfo.Intent)
		enc.AddString("tool_id", c.GenerationInfo.ToolID)
		enc.AddString("generation_id", c.GenerationInfo.GenerationID)
		enc.AddUint64("cost", c.GenerationInfo.Cost)
		enc.AddDuration("generation_duration", c.GenerationInfo.Duration)
	}
	enc.AddString("request_id", c.RequestID)
	enc.AddTime("start_time", c.StartTime)
	enc.AddDuration("request_duration", c.RequestDuration)
	enc.AddInt("status_code", c.StatusCode)
	if c.Error != nil {
		enc.AddString("error", c.Error.Error())
	}
	enc.AddString("path", c.Path)
	return nil
}

type Context struct {
	echo.Context
	Log       *zap.SugaredLogger
	Reqid     string
	User      *shared.UserMetadata
	LogValues *ContextLogValues
}
