package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"scriptura-api/internal/ctx"
	"scriptura-api/internal/shared"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type UserManager struct {
	redis *redis.Client
	rdb   *sql.DB
	log   *zap.SugaredLogger
}

var userManager *UserManager

func InitUserMiddleware(redisClient *redis.Client, readDB *sql.DB, log *zap.SugaredLogger) {
	userManager = &UserManager{redis: redisClient, rdb: readDB, log: log}
}

func GetUserMiddleware() (*UserManager, error) {
	if userManager == nil {
		return nil, errors.New("user middleware not initialized")
	}
	return userManager, nil
}

// ExtractUser resolves the bearer API key to a user when possible. Routes
// that merely personalize output chain only this; mutating routes also chain
// RequireUser so an absent identity can never reach a mutation.
func (u *UserManager) ExtractUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(cc echo.Context) error {
		c := cc.(*ctx.Context)
		c.User = nil

		apiKey, err := shared.ExtractAPIKey(c)
		if err != nil {
			return next(c)
		}
		user, err := u.getUserMetadataFromKey(c.Request().Context(), apiKey)
		if err != nil {
			return next(c)
		}
		c.User = user
		c.Log = c.Log.With("user_id", c.User.UserID)
		c.LogValues.UserID = user.UserID
		c.LogValues.Credits = user.Credits
		c.LogValues.Role = user.Role
		return next(c)
	}
}

func (u *UserManager) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(cc echo.Context) error {
		c := cc.(*ctx.Context)
		if c.User == nil {
			return c.String(401, "unauthorized")
		}
		return next(c)
	}
}

func (u *UserManager) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(cc echo.Context) error {
		c := cc.(*ctx.Context)
		if c.User == nil {
			return c.String(401, "unauthorized")
		}
		if c.User.Role != "admin" {
			return c.String(403, "forbidden")
		}
		return next(c)
	}
}

func (u *UserManager) getUserMetadataFromKey(ctx context.Context, apiKey string) (*shared.UserMetadata, error) {
	var userMetadata shared.UserMetadata
	userMetadata.APIKey = apiKey

	userInfoCacheKey := fmt.Sprintf("scriptura:v1:user:apikey:%s", apiKey)
	userInfoCache, err := u.redis.Get(ctx, userInfoCacheKey).Result()
	switch err {
	case nil:
		err = json.Unmarshal([]byte(userInfoCache), &userMetadata)
		if err == nil {
			return &userMetadata, nil
		}
		u.log.Errorw("Error unmarshalling user info cache", "error", err)
		fallthrough
	default:
		u.log.Debugw("User cache miss", "key", userInfoCacheKey)

		err = u.rdb.QueryRowContext(ctx, `
		SELECT
		user.id,
		user.name,
		user.email,
		user.credits,
		user.role
		FROM user
		INNER JOIN api_key ON user.id = api_key.user_id
		WHERE api_key.id = ?
		`, apiKey).Scan(
			&userMetadata.UserID,
			&userMetadata.Name,
			&userMetadata.Email,
			&userMetadata.Credits,
			&userMetadata.Role,
		)
		if err != nil {
			if err == sql.ErrNoRows {
				u.log.Warnw("Invalid API key", "key", apiKey)
				return nil, shared.ErrUnauthorized
			}
			u.log.Errorw("Database error during API key validation", "error", err)
			return nil, shared.ErrUnauthorized
		}
		go func() {
			userInfoCache, err := json.Marshal(userMetadata)
			if err != nil {
				u.log.Errorw("Error marshalling user info", "error", err)
				return
			}
			u.redis.Set(context.Background(), userInfoCacheKey, userInfoCache, shared.UserInfoCacheTTL)
		}()
		return &userMetadata, nil
	}
}
