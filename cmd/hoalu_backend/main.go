package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/posthog/posthog-go"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/hoalu/hoalu-backend/cmd/docs"
	"github.com/hoalu/hoalu-backend/internal/adapters/database/pgsql"
	"github.com/hoalu/hoalu-backend/internal/core/services"
	"github.com/hoalu/hoalu-backend/internal/handlers"
	"github.com/hoalu/hoalu-backend/internal/middleware"
	"github.com/hoalu/hoalu-backend/internal/platform/config"
	"github.com/hoalu/hoalu-backend/pkg/database"
)

// @title Hoalu Backend API
// @version 1.0
// @description Expense tracking backend: workspaces, wallets, expenses and cross-currency summaries.

// @host localhost:8080
// @BasePath /api/v1

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
	defer dbPool.Close()
	logger.Info("Database connection pool established")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidators()

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memorystore.NewStore(), rate)))

	var analyticsClient posthog.Client
	if cfg.PostHogAPIKey != "" {
		analyticsClient, err = posthog.NewWithConfig(cfg.PostHogAPIKey, posthog.Config{Endpoint: cfg.PostHogHost})
		if err != nil {
			logger.Error("Failed to initialize analytics client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer analyticsClient.Close()
	}

	r.GET("/health", handlers.GetHealth)

	setupAPIV1Routes(r, cfg, dbPool, analyticsClient)
	setupSwaggerRoutes(r, cfg)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, dbPool *pgxpool.Pool, analyticsClient posthog.Client) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.Analytics(analyticsClient))

	rateRepo := pgsql.NewPgxExchangeRateRepository(dbPool)
	workspaceRepo := pgsql.NewPgxWorkspaceRepository(dbPool)
	expenseRepo := pgsql.NewPgxExpenseRepository(dbPool)

	fxService := services.NewFxRateService(rateRepo)
	summaryService := services.NewSummaryService(workspaceRepo, expenseRepo, fxService)
	expenseService := services.NewExpenseService(expenseRepo, workspaceRepo)

	handlers.RegisterAPIRoutes(v1, fxService, summaryService, expenseService)
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	// Open a temporary database/sql connection via the pgx stdlib driver so
	// golang-migrate can drive it.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied successfully")
	}
	return nil
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// No swagger in prod.
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
