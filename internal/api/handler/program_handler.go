package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthtrack/records-api/internal/api/metrics"
	"github.com/healthtrack/records-api/internal/core/domain"
	"github.com/healthtrack/records-api/internal/core/ports"
)

// ProgramHandler handles HTTP requests for health programs.
type ProgramHandler struct {
	service ports.ProgramService
	metrics *metrics.Recorder
}

func NewProgramHandler(service ports.ProgramService, m *metrics.Recorder) *ProgramHandler {
	return &ProgramHandler{service: service, metrics: m}
}

// Create handles POST /programs.
//
// @Summary      Create a health program
// @Tags         programs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Key that makes retries return the first program"
// @Param        body             body      createProgramRequest  true   "Program details"
// @Success      201              {object}  createProgramResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /programs [post]
func (h *ProgramHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createProgramRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.InvalidInput("Name and description are required")
	}

	program, err := h.service.CreateProgram(c.Request().Context(), ports.CreateProgramInput{
		Name:           req.Name,
		Description:    req.Description,
		CreatedBy:      user.Username,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	h.metrics.ProgramCreated()
	return c.JSON(http.StatusCreated, createProgramResponse{
		Message:   "Program created",
		ProgramID: program.ID,
	})
}

// List handles GET /programs.
//
// @Summary      List health programs
// @Tags         programs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   programResponse
// @Failure      401  {object}  errorResponse
// @Router       /programs [get]
func (h *ProgramHandler) List(c echo.Context) error {
	programs, err := h.service.ListPrograms(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProgramResponses(programs))
}
