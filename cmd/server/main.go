package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jai-S-Rathore/healthcheck/internal/config"
	"github.com/Jai-S-Rathore/healthcheck/internal/database"
	"github.com/Jai-S-Rathore/healthcheck/internal/logging"
	"github.com/Jai-S-Rathore/healthcheck/internal/monitoring"
	"github.com/Jai-S-Rathore/healthcheck/internal/routes"
	"github.com/Jai-S-Rathore/healthcheck/internal/services"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.LogLevel, cfg.AppEnv)

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		logger.Fatal().Msg("DB_URL is required")
	}
	if cfg.AutoMigrate {
		dir, err := database.FindMigrationsDir(cfg.MigrationsDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to locate migrations")
		}
		if err := database.Migrate(cfg.DBUrl, dir, database.Up); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply migrations")
		}
		logger.Info().Str("dir", dir).Msg("migrations applied")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.DBUrl, database.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to PostgreSQL")

	// 3. Setup Fiber
	opts := routes.Options{
		Logger:  logger,
		Metrics: monitoring.New(),
		Clock:   services.NewClock(cfg.Location),
	}
	if cfg.ReportMailEnabled() {
		mailer, err := services.NewSESReportMailer(ctx, cfg.AWSRegion, cfg.ReportSenderEmail)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure report mailer")
		}
		opts.Mailer = mailer
		logger.Info().Str("sender", cfg.ReportSenderEmail).Msg("report e-mail delivery enabled")
	}

	app := routes.NewApp(opts)
	if err := routes.RegisterRoutes(app, cfg, pool, opts); err != nil {
		logger.Fatal().Err(err).Msg("failed to register routes")
	}

	// 4. Start Server
	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	logger.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server failed to start")
	}
}
