// Package router assembles the gin engine: middleware chain and routes.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rxreturns/backend/internal/infrastructure/auth"
	"github.com/rxreturns/backend/internal/infrastructure/config"
	"github.com/rxreturns/backend/internal/infrastructure/logger"
	"github.com/rxreturns/backend/internal/infrastructure/telemetry"
	"github.com/rxreturns/backend/internal/interfaces/http/handler"
	"github.com/rxreturns/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the API handlers wired into the router
type Handlers struct {
	System       *handler.SystemHandler
	Inventory    *handler.InventoryHandler
	Optimization *handler.OptimizationHandler
	Package      *handler.PackageHandler
	Distributor  *handler.DistributorHandler
}

// Dependencies holds everything the router needs beyond the handlers
type Dependencies struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	JWTService    *auth.JWTService
	Blacklist     auth.TokenBlacklist
	MeterProvider *telemetry.MeterProvider
	Handlers      Handlers
}

// healthPaths bypass authentication so orchestrators can probe them
var healthPaths = []string{"/health", "/ready"}

// New builds the gin engine with the full middleware chain and all
// routes registered.
func New(deps Dependencies) (*gin.Engine, error) {
	if err := middleware.SetupValidator(); err != nil {
		return nil, err
	}

	cfg := deps.Config
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, err
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: deps.MeterProvider,
		Enabled:       cfg.Telemetry.Enabled,
	}))

	engine.Use(middleware.JWT(middleware.JWTMiddlewareConfig{
		JWTService: deps.JWTService,
		Blacklist:  deps.Blacklist,
		SkipPaths:  healthPaths,
		Logger:     deps.Logger,
	}))
	engine.Use(middleware.TracingAttributeInjector())

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	registerRoutes(engine, deps.Handlers)
	return engine, nil
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return cors
}

func registerRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	lines := api.Group("/inventory/lines")
	{
		lines.GET("", h.Inventory.ListLines)
		lines.POST("", h.Inventory.CreateLine)
		lines.GET("/:id", h.Inventory.GetLine)
		lines.PUT("/:id", h.Inventory.UpdateLine)
		lines.DELETE("/:id", h.Inventory.DeleteLine)
	}

	engineGroup := api.Group("/optimization")
	{
		engineGroup.GET("/recommendations", h.Optimization.GetRecommendations)
		engineGroup.GET("/packages", h.Optimization.GetPackages)
		engineGroup.POST("/packages/preview", h.Optimization.GetPackagesForItems)
	}

	packages := api.Group("/packages")
	{
		packages.POST("", h.Package.CommitPackage)
		packages.GET("", h.Package.ListPackages)
		packages.GET("/:id", h.Package.GetPackage)
		packages.POST("/:id/ship", h.Package.MarkShipped)
		packages.POST("/:id/deliver", h.Package.MarkDelivered)
		packages.DELETE("/:id", h.Package.DeletePackage)
	}

	distributors := api.Group("/distributors")
	{
		distributors.GET("", h.Distributor.ListDistributors)
		distributors.GET("/:name", h.Distributor.GetDistributor)
		distributors.PUT("", h.Distributor.UpsertDistributor)
	}
}
