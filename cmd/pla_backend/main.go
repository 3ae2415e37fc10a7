package main

import (
	"context"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/core/services"
	"github.com/SscSPs/partner_ledger_app/internal/handlers"
	"github.com/SscSPs/partner_ledger_app/internal/jobs"
	"github.com/SscSPs/partner_ledger_app/internal/middleware"
	"github.com/SscSPs/partner_ledger_app/internal/notify/telegram"
	"github.com/SscSPs/partner_ledger_app/internal/platform/config"
	"github.com/SscSPs/partner_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/partner_ledger_app/internal/utils"
	"github.com/SscSPs/partner_ledger_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// @title Partner Ledger API
// @version 1.0
// @description Partner balances, transactions and payments.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := utils.NewLogger(cfg.IsProduction)
	slog.SetDefault(logger)

	ctx := context.Background()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis is optional for the API: without it notifications are not queued and
	// the login limiter keeps its counters in memory.
	var (
		redisClient *redis.Client
		jobClient   *jobs.Client
		inspector   *asynq.Inspector
	)
	redisClient, err = database.NewRedisClient(ctx, database.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, telegram notifications disabled", slog.String("error", err.Error()))
	} else {
		defer redisClient.Close()
		redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
		jobClient = jobs.NewClient(redisOpts)
		defer jobClient.Close()
		inspector = asynq.NewInspector(redisOpts)
		defer inspector.Close()
	}

	sender := telegram.NewClient(cfg.TelegramAPIBaseURL, cfg.TelegramBotToken)
	repos := pgsql.NewRepositoryProvider(dbPool)

	var queue portssvc.NotificationEnqueuer
	if jobClient != nil {
		queue = jobClient
	}
	svcContainer := services.NewServiceContainer(cfg, repos, queue, sender)

	if cfg.BootstrapAdminEmail != "" {
		if err := svcContainer.User.EnsureBootstrapAdmin(ctx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword, cfg.BootstrapAdminName); err != nil {
			logger.Error("Failed to create bootstrap admin", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	loginLimiter, err := middleware.NewLimiter(cfg.LoginRateLimit, redisClient, "login")
	if err != nil {
		logger.Error("Failed to create login rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	switch {
	case len(cfg.CORSAllowedOrigins) > 0:
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	case !cfg.IsProduction:
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowHeaders("Authorization")
	corsConfig.AddExposeHeaders("Content-Disposition")
	if corsConfig.AllowAllOrigins || len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	opts := handlers.RouteOptions{LoginLimiter: loginLimiter}
	if inspector != nil {
		opts.QueueInspector = inspector
	}
	if posthogClient.IsInitialized() {
		opts.Posthog = posthogClient
	}
	handlers.RegisterRoutes(r, cfg, svcContainer, opts)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
