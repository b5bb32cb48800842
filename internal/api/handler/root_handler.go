package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home handles GET /.
//
// @Summary      API welcome message
// @Tags         root
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       / [get]
func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Welcome to the API!"})
}

// Favicon answers browsers with an empty 204.
func Favicon(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
