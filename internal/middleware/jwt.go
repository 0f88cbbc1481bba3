package middleware // middleware contains reusable HTTP middleware functions

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinoteka/movie-catalog/internal/model"
	"github.com/kinoteka/movie-catalog/internal/repository"
	"github.com/kinoteka/movie-catalog/internal/utils"
)

// Context keys set by Auth for downstream handlers.
const (
	UserKey   = "user"    // *model.User
	UserIDKey = "user_id" // uuid.UUID
)

// Auth returns an Echo middleware that validates a Bearer access token and
// resolves the caller to a live user row. The subject embedded in the
// token is looked up in the database on every request, so tokens minted
// for since-deleted accounts stop working immediately. On success the
// user record and id are stored in the request context under UserKey and
// UserIDKey.
func Auth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// One uniform rejection for malformed, tampered and expired
			// tokens alike.
			userID, err := utils.ParseToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			u, err := users.GetByID(ctx, userID)
			if err != nil {
				if err == repository.ErrUserNotFound {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
			}

			c.Set(UserKey, &u)
			c.Set(UserIDKey, u.ID)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user stored by Auth, or nil when
// the route was not protected.
func CurrentUser(c echo.Context) *model.User {
	if u, ok := c.Get(UserKey).(*model.User); ok {
		return u
	}
	return nil
}
