package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthtrack/records-api/internal/api/metrics"
	"github.com/healthtrack/records-api/internal/core/domain"
	"github.com/healthtrack/records-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	metrics     *metrics.Recorder
}

func NewAuthHandler(authService ports.AuthService, m *metrics.Recorder) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

// Login authenticates a doctor and returns a fresh bearer token. Any token
// issued earlier to the same user stops working.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.Login(loginResult(err))
		return err
	}

	h.metrics.Login("ok")
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return "missing_fields"
	case errors.Is(err, domain.ErrUserNotFound):
		return "unknown_user"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "wrong_password"
	default:
		return "error"
	}
}
