package api

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mibiblioteca/catalog-api/docs"
	"github.com/mibiblioteca/catalog-api/internal/api/handler"
	"github.com/mibiblioteca/catalog-api/internal/api/metrics"
	"github.com/mibiblioteca/catalog-api/internal/api/middleware"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
	"github.com/mibiblioteca/catalog-api/internal/infrastructure/http/handlers"
)

const defaultMaxUploadMB = 50

// Deps are the services and process-scoped collaborators the router wires.
type Deps struct {
	Log     zerolog.Logger
	Auth    ports.AuthService
	Catalog ports.CatalogService
	Loans   ports.LoanService
	Assets  ports.AssetService

	// LoginLimiter throttles POST /api/login. Nil disables throttling.
	LoginLimiter ports.LoginLimiter
	// HealthChecks are run by the readiness probe, keyed by dependency name.
	HealthChecks map[string]handlers.Check
	MaxUploadMB  int

	// Registerer receives both the HTTP and the domain metrics; Gatherer
	// backs /metrics. Both default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if err := metrics.Register(d.Registerer); err != nil {
		d.Log.Error().Err(err).Msg("domain metrics not registered")
	}
	if d.MaxUploadMB <= 0 {
		d.MaxUploadMB = defaultMaxUploadMB
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dM", d.MaxUploadMB)))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metrics.Namespace,
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	bookHandler := handler.NewBookHandler(d.Catalog)
	loanHandler := handler.NewLoanHandler(d.Loans)
	assetHandler := handler.NewAssetHandler(d.Assets)
	requireAuth := middleware.Auth(d.Auth)

	// --- Operational routes ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(d.HealthChecks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public assets ---
	e.GET("/uploads/:file", assetHandler.Public)

	// --- API ---
	g := e.Group("/api")

	loginMiddleware := []echo.MiddlewareFunc{}
	if d.LoginLimiter != nil {
		loginMiddleware = append(loginMiddleware, middleware.LoginThrottle(d.LoginLimiter, d.Log))
	}
	g.POST("/signup", authHandler.Signup)
	g.POST("/login", authHandler.Login, loginMiddleware...)

	g.GET("/libros", bookHandler.List)
	g.GET("/categorias", bookHandler.Categories)
	g.POST("/libros", bookHandler.Create,
		requireAuth, middleware.RequireAdmin("Solo administradores pueden agregar libros"))
	g.DELETE("/libros/:id", bookHandler.Delete,
		requireAuth, middleware.RequireAdmin("Solo administradores pueden borrar libros"))

	g.POST("/prestamos", loanHandler.Create, requireAuth)
	g.GET("/prestamos", loanHandler.List, requireAuth)

	g.GET("/download/:filename", assetHandler.Download, requireAuth)

	return e
}
