package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/core/services"
	"github.com/rendaplus/rendaplus_backend/internal/handlers"
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
	"github.com/rendaplus/rendaplus_backend/internal/platform/config"
	"github.com/rendaplus/rendaplus_backend/internal/repositories/database/pgsql"
	"github.com/rendaplus/rendaplus_backend/internal/utils"
	"github.com/rendaplus/rendaplus_backend/pkg/database"
)

// @title RendaPlus Backend API
// @version 1.0
// @description Referral-based investment platform backend.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, &repos)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(limitermemory.NewStore(), rate)))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := handlers.RegisterCustomValidators(); err != nil {
		logger.Error("Failed to register binding validators", slog.String("error", err.Error()))
		os.Exit(1)
	}
	handlers.RegisterRoutes(r, cfg, serviceContainer)

	// The accrual cycle normally runs on schedule; the admin trigger endpoint
	// covers re-runs and environments without a scheduler.
	scheduler, err := startAccrualScheduler(logger, cfg, serviceContainer)
	if err != nil {
		logger.Error("Failed to start accrual scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations before the server starts
// accepting traffic. It uses a separate database/sql connection through the
// pgx stdlib driver so migrate and the application pool stay independent.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// startAccrualScheduler wires the cron-driven accrual cycle. Returns nil when
// no cron expression is configured.
func startAccrualScheduler(logger *slog.Logger, cfg *config.Config, container *portssvc.ServiceContainer) (*cron.Cron, error) {
	if cfg.AccrualCron == "" {
		logger.Info("ACCRUAL_CRON not set, scheduled accrual disabled.")
		return nil, nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.AccrualCron, func() {
		runLogger := logger.With(slog.String("job", "accrual_cycle"))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.AccrualTimeout)
		defer cancel()
		ctx = middleware.ContextWithLogger(ctx, runLogger)

		summary, err := container.Accrual.RunAccrualCycle(ctx, services.SystemActorID)
		if err != nil {
			runLogger.Error("Scheduled accrual cycle failed", slog.String("error", err.Error()))
			return
		}
		runLogger.Info("Scheduled accrual cycle finished",
			slog.Int("processed", summary.Processed),
			slog.Int("skipped", summary.Skipped),
			slog.Int("failed", len(summary.Failed)),
		)
	})
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	logger.Info("Accrual scheduler started", slog.String("cron", cfg.AccrualCron))
	return scheduler, nil
}
