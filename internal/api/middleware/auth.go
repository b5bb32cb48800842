package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/healthtrack/records-api/internal/core/domain"
	"github.com/healthtrack/records-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextUser     = "user"
	ContextUsername = "username"
	ContextRole     = "role"
)

// Auth resolves the bearer token to the user holding it and stores that user
// in the echo context. Failures are returned as domain errors for the central
// error handler to render as 401.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(ContextUser, user)
			c.Set(ContextUsername, user.Username)
			c.Set(ContextRole, user.Role)

			return next(c)
		}
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrTokenMissing
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrTokenMissing
	}
	return parts[1], nil
}
