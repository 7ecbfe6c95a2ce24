package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	inventoryapp "github.com/rxreturns/backend/internal/application/inventory"
	optimizationapp "github.com/rxreturns/backend/internal/application/optimization"
	pricingapp "github.com/rxreturns/backend/internal/application/pricing"
	shippingapp "github.com/rxreturns/backend/internal/application/shipping"
	"github.com/rxreturns/backend/internal/domain/optimization"
	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/rxreturns/backend/internal/infrastructure/auth"
	"github.com/rxreturns/backend/internal/infrastructure/cache"
	"github.com/rxreturns/backend/internal/infrastructure/config"
	"github.com/rxreturns/backend/internal/infrastructure/logger"
	"github.com/rxreturns/backend/internal/infrastructure/persistence"
	"github.com/rxreturns/backend/internal/infrastructure/telemetry"
	"github.com/rxreturns/backend/internal/interfaces/http/handler"
	"github.com/rxreturns/backend/internal/interfaces/http/router"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()
	db.DB.Logger = logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTraceCfg := telemetry.DefaultDBTracingConfig()
		dbTraceCfg.Enabled = true
		if err := telemetry.NewDBTracingPlugin(dbTraceCfg, log).RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DefaultDBMetricsConfig(), log)
	if err != nil {
		log.Warn("Failed to register database metrics", zap.Error(err))
	} else if dbMetrics != nil {
		dbMetrics.StartPoolStatsCollection(ctx)
		defer dbMetrics.Stop()
	}

	// Token blacklist: Redis when reachable, in-memory otherwise
	var blacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(ctx, 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		_ = redisClient.Close()
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		defer func() {
			_ = redisClient.Close()
		}()
	}
	cancelPing()

	// Repositories
	lineRepo := persistence.NewGormInventoryLineRepository(db.DB)
	observationRepo := persistence.NewGormPriceObservationRepository(db.DB)
	packageRepo := persistence.NewGormReturnPackageRepository(db.DB)

	var distributorRepo pricing.DistributorRepository = persistence.NewGormDistributorRepository(db.DB)
	cacheFactory := cache.NewDistributorCacheFactory(cfg.Redis, cfg.Engine.DistributorCacheTTL, cache.WithLogger(log))
	if distributorCache, err := cacheFactory.CreateCache(); err != nil {
		log.Warn("Distributor cache unavailable, using uncached repository", zap.Error(err))
	} else {
		distributorRepo = cache.NewCachedDistributorRepository(distributorRepo, distributorCache, log)
	}

	// Application services
	inventoryService := inventoryapp.NewService(lineRepo)
	optimizationService := optimizationapp.NewService(lineRepo, observationRepo, packageRepo, distributorRepo)
	optimizationService.SetObservationBatchSize(cfg.Engine.ObservationBatchSize)
	optimizationService.SetAvailabilityPolicy(optimization.PolicyFromName(cfg.Engine.AvailabilityPolicy))
	shippingService := shippingapp.NewService(packageRepo)
	directoryService := pricingapp.NewDirectoryService(distributorRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Handlers
	optimizationHandler := handler.NewOptimizationHandler(optimizationService)
	packageHandler := handler.NewPackageHandler(shippingService)

	if meterProvider.IsEnabled() {
		engineMetrics, err := telemetry.NewEngineMetrics(telemetry.EngineMetricsConfig{
			Meter:        meterProvider.Meter("rxreturns/engine"),
			Logger:       log,
			PoolProvider: telemetry.NewGormEnginePoolProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize engine metrics", zap.Error(err))
		} else {
			engineMetrics.StartPeriodicCollection(0)
			defer engineMetrics.Stop()
			optimizationHandler.WithMetrics(engineMetrics)
			packageHandler.WithMetrics(engineMetrics)
		}
	}

	engine, err := router.New(router.Dependencies{
		Config:        cfg,
		Logger:        log,
		DB:            db.DB,
		JWTService:    jwtService,
		Blacklist:     blacklist,
		MeterProvider: meterProvider,
		Handlers: router.Handlers{
			System:       handler.NewSystemHandler(db.DB),
			Inventory:    handler.NewInventoryHandler(inventoryService),
			Optimization: optimizationHandler,
			Package:      packageHandler,
			Distributor:  handler.NewDistributorHandler(directoryService),
		},
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("app", cfg.App.Name),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}

	log.Info("Server stopped")
}
