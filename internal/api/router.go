package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/demandhub/consultancy-api/docs"
	"github.com/demandhub/consultancy-api/internal/api/handler"
	"github.com/demandhub/consultancy-api/internal/api/middleware"
	"github.com/demandhub/consultancy-api/internal/core/ports"
	"github.com/demandhub/consultancy-api/internal/infrastructure/http/handlers"
)

// ServiceName identifies the process in logs, metrics and the liveness probe.
const ServiceName = "consultancy-api"

// Dependencies groups everything the router needs to build its handlers.
type Dependencies struct {
	Auth      ports.AuthService
	Identity  ports.IdentityResolver
	Campaigns ports.CampaignService
	Tasks     ports.TaskService
	Team      ports.TeamService
	Dashboard ports.DashboardService

	// Checks are run by GET /health/ready.
	Checks map[string]handlers.CheckFunc

	Logger      zerolog.Logger
	CORSOrigins []string

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(deps.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "demandhub",
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	campaignHandler := handler.NewCampaignHandler(deps.Campaigns)
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	teamHandler := handler.NewTeamHandler(deps.Team)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)
	healthHandler := handlers.NewHealthHandler(ServiceName, deps.Checks)
	requireUser := middleware.Auth(deps.Identity)

	// --- Operational routes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, requireUser)

	// --- Campaigns ---
	campaigns := api.Group("/campaigns", requireUser)
	campaigns.POST("", campaignHandler.Create)
	campaigns.GET("", campaignHandler.List)
	campaigns.GET("/:id", campaignHandler.Get)
	campaigns.PUT("/:id", campaignHandler.Update)

	// --- Tasks ---
	tasks := api.Group("/tasks", requireUser)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Team ---
	team := api.Group("/team", requireUser)
	team.GET("", teamHandler.List)
	team.GET("/:id", teamHandler.Get)
	team.PUT("/:id", teamHandler.Update)
	team.DELETE("/:id", teamHandler.Delete)

	// --- Dashboard ---
	api.GET("/dashboard/stats", dashboardHandler.Stats, requireUser)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// requestLogger writes one structured entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
