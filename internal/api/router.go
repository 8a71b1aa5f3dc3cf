package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/yedidi/warehouse-api/docs"
	"github.com/yedidi/warehouse-api/internal/api/handler"
	"github.com/yedidi/warehouse-api/internal/api/middleware"
	"github.com/yedidi/warehouse-api/internal/core/domain"
	"github.com/yedidi/warehouse-api/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth    ports.AuthService
	Catalog ports.CatalogService
	Guard   ports.AccessGuard
	Logger  zerolog.Logger

	// Readiness checks are registered only for non-nil connections.
	Mongo *mongo.Database
	Redis *redis.Client

	// Registry receives the HTTP metrics. Defaults to the global registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "warehouse",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	productHandler := handler.NewProductHandler(d.Catalog)
	auth := middleware.Auth(d.Guard)
	can := func(action domain.Action) echo.MiddlewareFunc {
		return middleware.RBAC(d.Guard, action)
	}

	// --- Public API ---
	e.POST("/api/signup", authHandler.Signup)
	e.POST("/api/login", authHandler.Login)

	// --- Authenticated API ---
	e.PUT("/api/permission", authHandler.UpdatePermission, auth, can(domain.ActionUpdatePermission))
	e.POST("/api/product", productHandler.Create, auth, can(domain.ActionCreateProduct))
	e.GET("/api/product/:id", productHandler.Get, auth, can(domain.ActionReadProduct))
	e.PUT("/api/product/:id", productHandler.Update, auth, can(domain.ActionUpdateProduct))
	e.DELETE("/api/product/:id", productHandler.Delete, auth, can(domain.ActionDeleteProduct))
	// Product routes without an id are unknown paths, not a wrong method.
	e.Match([]string{http.MethodGet, http.MethodPut, http.MethodDelete}, "/api/product", func(echo.Context) error {
		return echo.ErrNotFound
	})

	// --- Health probes (no auth required) ---
	checks := make(map[string]handler.DependencyCheck, 2)
	if d.Mongo != nil {
		checks["mongodb"] = handler.MongoCheck(d.Mongo)
	}
	if d.Redis != nil {
		checks["redis"] = handler.RedisCheck(d.Redis)
	}
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog entry per request.
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
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
