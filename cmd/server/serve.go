package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"unihub/internal/adapters/http/middleware"
	"unihub/internal/adapters/http/routes"
	"unihub/internal/adapters/identity"
	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/config"
	"unihub/internal/core/domain"
	"unihub/internal/core/services"
	"unihub/internal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Migrate the database, seed the bootstrap administrator, start the scheduled jobs and serve the API.`,
		RunE:  runServe,
	}
}

// bootstrap loads configuration, installs the logger and opens the database
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()

	if err := config.Migrate(db); err != nil {
		return err
	}

	userService := services.NewUserService(repositories.NewUserRepository(db), repositories.NewStores(db))
	if err := config.NewSeeder(db, userService).Run(cmd.Context(), cfg.Bootstrap); err != nil {
		logger.Warn("failed to seed administrator", "error", err)
	}

	cronService := services.NewCronService(repositories.NewRefreshTokenRepository(db), cfg.Cron.PurgeSchedule)
	if err := cronService.Start(); err != nil {
		return fmt.Errorf("failed to start cron service: %w", err)
	}
	defer cronService.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "UniHub API v1.0",
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: cfg.IsProd(),
	})

	middleware.Setup(app, cfg)

	err = routes.Setup(app, db, cfg, routes.Dependencies{
		Providers: map[domain.Provider]services.IdentityProvider{
			domain.ProviderGoogle:   identity.NewGoogleClient(cfg.OAuth.GoogleUserInfoURL),
			domain.ProviderFacebook: identity.NewFacebookClient(cfg.OAuth.FacebookGraphURL),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set up routes: %w", err)
	}

	go gracefulShutdown(app)

	logger.Info("server starting", "port", cfg.App.Port, "mode", cfg.App.Mode)
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
