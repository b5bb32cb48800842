package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthtrack/records-api/internal/api/metrics"
	"github.com/healthtrack/records-api/internal/core/domain"
	"github.com/healthtrack/records-api/internal/core/ports"
)

// ClientHandler handles HTTP requests for client registration, lookup and enrollment.
type ClientHandler struct {
	service ports.ClientService
	metrics *metrics.Recorder
}

func NewClientHandler(service ports.ClientService, m *metrics.Recorder) *ClientHandler {
	return &ClientHandler{service: service, metrics: m}
}

// Register handles POST /clients.
//
// @Summary      Register a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 false  "Key that makes retries return the first client"
// @Param        body             body      registerClientRequest  true   "Client details"
// @Success      201              {object}  registerClientResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /clients [post]
func (h *ClientHandler) Register(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req registerClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.InvalidInput("Missing required fields: " + err.Error())
	}

	client, err := h.service.RegisterClient(c.Request().Context(),
		toRegisterInput(req, user.Username, c.Request().Header.Get("Idempotency-Key")))
	if err != nil {
		return err
	}

	h.metrics.ClientRegistered()
	return c.JSON(http.StatusCreated, registerClientResponse{
		Message:  "Client registered",
		ClientID: client.ID,
	})
}

// Search handles GET /clients/search?q=...
//
// @Summary      Search clients by name
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Case-insensitive substring of first or last name"
// @Success      200  {array}   clientSummaryResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /clients/search [get]
func (h *ClientHandler) Search(c echo.Context) error {
	results, err := h.service.SearchClients(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}

	h.metrics.SearchResults(len(results))
	return c.JSON(http.StatusOK, toSummaryResponses(results))
}

// Get handles GET /clients/:id.
//
// @Summary      Get a client by id
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  clientResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.service.GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Enroll handles POST /clients/:id/enroll. An unknown client is reported
// before the body is looked at. Program ids are checked before anything is
// written; one unknown id rejects the whole request.
//
// @Summary      Enroll a client in programs
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Client id"
// @Param        body  body      enrollRequest  true  "Program ids"
// @Success      200   {object}  enrollResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /clients/{id}/enroll [post]
func (h *ClientHandler) Enroll(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.service.GetClient(c.Request().Context(), id); err != nil {
		return err
	}

	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	client, err := h.service.EnrollClient(c.Request().Context(), id, req.ProgramIDs)
	if err != nil {
		return err
	}

	h.metrics.Enrolled()
	return c.JSON(http.StatusOK, enrollResponse{
		Message: "Client enrolled in programs",
		Client:  toClientResponse(client),
	})
}
