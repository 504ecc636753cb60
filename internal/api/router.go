package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mustardworks/portfolio-api/docs"
	"github.com/mustardworks/portfolio-api/internal/api/handler"
	"github.com/mustardworks/portfolio-api/internal/api/middleware"
	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
	"github.com/mustardworks/portfolio-api/internal/infrastructure/http/handlers"
)

const (
	serviceName = "MustardWorks API"
	Version     = "1.0.0"
)

// Deps is everything the router wires into handlers and middleware.
type Deps struct {
	Logger zerolog.Logger

	Tokens   ports.TokenVerifier
	Users    middleware.UserFinder
	Auth     ports.AuthService
	UserSvc  ports.UserService
	Projects ports.ProjectService
	Gallery  ports.GalleryService
	Stats    ports.StatsService
	Images   ports.ImageStore // optional

	// Checks are run by the readiness endpoint.
	Checks map[string]handlers.Check

	Cookie         handler.CookieConfig
	AllowedOrigins []string
	BodyLimit      string
	// RateLimitStore limits /api/*. Nil disables rate limiting.
	RateLimitStore echomiddleware.RateLimiterStore

	// MetricsRegisterer and MetricsGatherer expose HTTP metrics on /metrics.
	// Both nil disables the prometheus middleware.
	MetricsRegisterer prometheus.Registerer
	MetricsGatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch,
			http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, middleware.HeaderAuthToken,
		},
	}))
	if d.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(d.BodyLimit))
	}
	if d.MetricsRegisterer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "portfolio_http",
			Registerer: d.MetricsRegisterer,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: d.MetricsGatherer,
		}))
	}

	// --- Health checks and docs (no auth required) ---
	health := handlers.NewHealthHandler(serviceName, Version, d.Checks)
	e.GET("/", health.Banner)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	var apiMiddleware []echo.MiddlewareFunc
	if d.RateLimitStore != nil {
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(d.RateLimitStore))
	}
	api := e.Group("/api", apiMiddleware...)

	authn := middleware.NewAuthenticator(d.Tokens, d.Users, d.Logger)
	required := authn.Required()
	optional := authn.Optional()
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/admin/login", authHandler.AdminLogin)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, required)
	auth.PATCH("/update-password", authHandler.UpdatePassword, required)

	userHandler := handler.NewUserHandler(d.UserSvc)
	api.GET("/users", userHandler.List, required, adminOnly)

	projectHandler := handler.NewProjectHandler(d.Projects)
	projects := api.Group("/projects", required)
	projects.POST("/submit", projectHandler.Submit)
	projects.GET("/my-projects", projectHandler.ListMine)
	projects.GET("", projectHandler.List, adminOnly)
	projects.GET("/:id", projectHandler.Get)
	projects.PATCH("/:id/status", projectHandler.UpdateStatus, adminOnly)
	projects.DELETE("/:id", projectHandler.Delete, adminOnly)

	galleryHandler := handler.NewGalleryHandler(d.Gallery, d.Images)
	gallery := api.Group("/gallery")
	gallery.GET("", galleryHandler.List, optional)
	gallery.GET("/categories", galleryHandler.Categories)
	gallery.GET("/admin/all", galleryHandler.ListAll, required, adminOnly)
	gallery.GET("/:id", galleryHandler.Get, optional)
	gallery.POST("", galleryHandler.Create, required, adminOnly)
	gallery.POST("/images", galleryHandler.UploadImage, required, adminOnly)
	gallery.PATCH("/:id", galleryHandler.Update, required, adminOnly)
	gallery.DELETE("/:id", galleryHandler.Delete, required, adminOnly)

	statsHandler := handler.NewStatsHandler(d.Stats)
	api.GET("/stats/dashboard", statsHandler.Dashboard, required, adminOnly)

	return e
}
