package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/jobportal/jobboard/docs"
	"github.com/jobportal/jobboard/internal/api/cookies"
	"github.com/jobportal/jobboard/internal/api/handler"
	"github.com/jobportal/jobboard/internal/api/middleware"
	"github.com/jobportal/jobboard/internal/core/domain"
	"github.com/jobportal/jobboard/internal/core/ports"
)

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Auth     ports.AuthService
	Sessions ports.SessionManager
	Board    ports.BoardService

	// HealthChecks back /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.PingFunc

	Renderer echo.Renderer
	Logger   zerolog.Logger

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	CookieSecure bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	jar := cookies.Jar{Secure: deps.CookieSecure}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "jobboard",
		Subsystem:  "http",
		Registerer: deps.Registerer,
	}))
	e.Use(middleware.Session(deps.Sessions, jar, deps.Logger))

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions, jar, deps.Logger)
	boardHandler := handler.NewBoardHandler(deps.Board, jar, deps.Logger)

	employer := middleware.RequireRole(domain.RoleEmployer, handler.NoticeEmployersOnly, jar, deps.Logger)
	jobSeeker := middleware.RequireRole(domain.RoleJobSeeker, handler.NoticeJobSeekersOnly, jar, deps.Logger)
	admin := middleware.RequireRole(domain.RoleAdmin, handler.NoticeAdminOnly, jar, deps.Logger)

	// --- Public pages ---
	e.GET("/", boardHandler.Index)
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- Role-gated pages ---
	e.GET("/post_job", boardHandler.ShowPostJob, employer)
	e.POST("/post_job", boardHandler.PostJob, employer)
	e.GET("/apply/:jobId", boardHandler.Apply, jobSeeker)
	e.GET("/admin", boardHandler.Admin, admin)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
