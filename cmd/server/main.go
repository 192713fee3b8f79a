package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appaccounting "github.com/tatweer/accounting/internal/application/accounting"
	reportapp "github.com/tatweer/accounting/internal/application/report"
	"github.com/tatweer/accounting/internal/infrastructure/auth"
	"github.com/tatweer/accounting/internal/infrastructure/cache"
	"github.com/tatweer/accounting/internal/infrastructure/config"
	"github.com/tatweer/accounting/internal/infrastructure/logger"
	"github.com/tatweer/accounting/internal/infrastructure/persistence"
	"github.com/tatweer/accounting/internal/infrastructure/scheduler"
	"github.com/tatweer/accounting/internal/infrastructure/telemetry"
	"github.com/tatweer/accounting/internal/interfaces/http/handler"
	"github.com/tatweer/accounting/internal/interfaces/http/middleware"
	"github.com/tatweer/accounting/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting accounting service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Redis backs the exchange rate cache. The service stays up without
	// it; lookups just fall through to Postgres.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	{
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unreachable, exchange rate caching degraded", zap.Error(err))
		}
		cancel()
	}

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	glEntryRepo := persistence.NewGormGLEntryRepository(db.DB)
	journalEntryRepo := persistence.NewGormJournalEntryRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	fiscalYearRepo := persistence.NewGormFiscalYearRepository(db.DB)
	exchangeRateRepo := persistence.NewGormExchangeRateRepository(db.DB)
	cachedRateRepo := cache.NewCachedExchangeRateRepository(exchangeRateRepo, redisClient, log)

	// Application services
	approvalService := appaccounting.NewDepreciationApprovalService(journalEntryRepo, log)
	reportService := reportapp.NewRootTrialBalanceService(
		accountRepo, glEntryRepo, companyRepo, fiscalYearRepo, cachedRateRepo, log,
	)

	// Hourly depreciation approval task
	approvalScheduler := scheduler.NewDepreciationScheduler(approvalService, log, scheduler.DepreciationSchedulerConfig{
		Enabled:    cfg.Scheduler.Enabled,
		Interval:   cfg.Scheduler.Interval,
		RunTimeout: cfg.Scheduler.RunTimeout,
	})
	if err := approvalScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start depreciation scheduler", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := approvalScheduler.Stop(stopCtx); err != nil {
			log.Error("Error stopping depreciation scheduler", zap.Error(err))
		}
	}()
	if cfg.Scheduler.Enabled {
		log.Info("Depreciation scheduler started",
			zap.Duration("interval", cfg.Scheduler.Interval),
			zap.Duration("run_timeout", cfg.Scheduler.RunTimeout),
		)
	}

	// HTTP handlers
	reportHandler := handler.NewRootTrialBalanceHandler(reportService)
	journalEntryHandler := handler.NewJournalEntryHandler(approvalService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	tokenVerifier := auth.NewTokenVerifier(cfg.JWT)
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		Verifier: tokenVerifier,
		SkipPaths: []string{
			"/health",
			"/api/v1/system/health",
			"/api/v1/system/ping",
		},
		Logger: log,
	}))

	// Health check outside API versioning for load balancers
	engine.GET("/health", systemHandler.GetHealth)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(reportHandler).
		Register(journalEntryHandler).
		Register(systemHandler).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
