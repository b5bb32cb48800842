package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/healthtrack/records-api/docs"
	"github.com/healthtrack/records-api/internal/api/handler"
	"github.com/healthtrack/records-api/internal/api/metrics"
	"github.com/healthtrack/records-api/internal/api/middleware"
	"github.com/healthtrack/records-api/internal/core/domain"
	"github.com/healthtrack/records-api/internal/core/ports"
	"github.com/healthtrack/records-api/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs; the caller owns their lifetime.
type Dependencies struct {
	AuthService    ports.AuthService
	ProgramService ports.ProgramService
	ClientService  ports.ClientService
	// Probes are pinged by /health/ready.
	Probes []handlers.Probe
	// Registry receives both the HTTP and the business metrics. A nil registry
	// gets replaced by a fresh one.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	rec := metrics.New(reg)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	// Outside the request logger, which renders errors first, so the
	// recorded status code is the one the client received.
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "healthrecords",
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(requestLogger(deps.Logger))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService, rec)
	programHandler := handler.NewProgramHandler(deps.ProgramService, rec)
	clientHandler := handler.NewClientHandler(deps.ClientService, rec)
	protected := []echo.MiddlewareFunc{
		middleware.Auth(deps.AuthService),
		middleware.RBAC(domain.RoleDoctor),
	}

	// --- Public routes ---
	e.GET("/", handler.Home)
	e.GET("/favicon.ico", handler.Favicon)
	e.POST("/login", authHandler.Login)

	// --- Health probes, metrics, docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(deps.Probes...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Programs ---
	e.POST("/programs", programHandler.Create, protected...)
	e.GET("/programs", programHandler.List, protected...)

	// --- Clients ---
	e.POST("/clients", clientHandler.Register, protected...)
	e.GET("/clients/search", clientHandler.Search, protected...)
	e.GET("/clients/:id", clientHandler.Get, protected...)
	e.POST("/clients/:id/enroll", clientHandler.Enroll, protected...)

	return e
}

// requestLogger emits one zerolog entry per request. Headers are never logged,
// so bearer tokens stay out of the logs.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
