package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/healthtrack/records-api/internal/api/middleware"
	"github.com/healthtrack/records-api/internal/core/domain"
)

// currentUser returns the user injected by the Auth middleware. A missing user
// means the route was registered without Auth; treat it as unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUser).(*domain.User)
	if user == nil || user.Username == "" {
		return nil, domain.ErrTokenMissing
	}
	return user, nil
}
