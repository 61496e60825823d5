package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wardwatch/wardwatch/internal/config"
	"github.com/wardwatch/wardwatch/internal/domain/dashboard"
	"github.com/wardwatch/wardwatch/internal/domain/his"
	"github.com/wardwatch/wardwatch/internal/domain/report"
	"github.com/wardwatch/wardwatch/internal/domain/roster"
	"github.com/wardwatch/wardwatch/internal/domain/ward"
	"github.com/wardwatch/wardwatch/internal/platform/db"
	"github.com/wardwatch/wardwatch/internal/platform/middleware"
	"github.com/wardwatch/wardwatch/internal/platform/settings"
	"github.com/wardwatch/wardwatch/internal/platform/sheets"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wardwatch-server",
		Short: "Nursing workforce tracking API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Main database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// HIS warehouse. Read-only, so a small pool is enough. Falls back to the
	// main database in deployments without a separate warehouse.
	hisPool := pool
	if cfg.HISDSN() != cfg.DatabaseURL {
		hisPool, err = db.NewPool(ctx, cfg.HISDSN(), 5, 1)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to HIS warehouse")
		}
		defer hisPool.Close()
		logger.Info().Msg("connected to HIS warehouse")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeout) * time.Second))
	e.Use(middleware.BodyLimit("1M", "10M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", db.HealthHandler(pool))

	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Repositories
	wardRepo := ward.NewRepoPG(pool)
	ipdRepo := roster.NewIPDShiftRepoPG(pool)
	opdRepo := roster.NewOPDShiftRepoPG(pool)
	summaryRepo := roster.NewSummaryRepoPG(pool)
	txRunner := roster.NewTxRunnerPG(pool)
	hisRepo := his.NewRepoPG(hisPool)

	// Ward registry
	wardSvc := ward.NewService(wardRepo)
	ward.NewHandler(wardSvc).RegisterRoutes(apiV1)

	// Daily shift records
	rosterSvc := roster.NewService(ipdRepo, opdRepo, summaryRepo, wardRepo, txRunner)
	roster.NewHandler(rosterSvc).RegisterRoutes(apiV1)

	// Dashboard read models
	dashSvc := dashboard.NewService(wardRepo, ipdRepo, opdRepo, summaryRepo)
	dashboard.NewHandler(dashSvc).RegisterRoutes(apiV1)

	// Period exports
	reportSvc := report.NewService(wardRepo, ipdRepo, opdRepo, summaryRepo)
	report.NewHandler(reportSvc).RegisterRoutes(apiV1)

	// HIS census lookup
	hisSvc := his.NewService(hisRepo, wardRepo, cfg.HISQueryTimeout())
	his.NewHandler(hisSvc).RegisterRoutes(apiV1)

	// Legacy sheet ingestion and its settings
	settingsStore := settings.NewStore(cfg.SettingsFile)
	settings.NewHandler(settingsStore).RegisterRoutes(apiV1)
	sheetsClient := sheets.NewClient(cfg.SheetsFetchTimeout())
	sheets.NewHandler(sheetsClient, settingsStore).RegisterRoutes(apiV1)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
