package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/TrustImage/pkg/config"
	"github.com/NeuralTrust/TrustImage/pkg/dependency_container"
	"github.com/NeuralTrust/TrustImage/pkg/infra/database"
	infraLogger "github.com/NeuralTrust/TrustImage/pkg/infra/logger"
	"github.com/NeuralTrust/TrustImage/pkg/infra/prometheus"
	"github.com/NeuralTrust/TrustImage/pkg/server"
	"github.com/NeuralTrust/TrustImage/pkg/server/router"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the moderation workers and the admin API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, closeLogs, err := infraLogger.NewLogger("trustimage")
	if err != nil {
		return err
	}
	// runs last so the shutdown records below reach the log file
	defer closeLogs()
	if err := config.Load(configPath); err != nil {
		return err
	}
	cfg := config.GetConfig()

	if cfg.Metrics.Enabled {
		prometheus.Initialize(prometheus.MetricsConfig{
			EnableLatency:    cfg.Metrics.EnableLatency,
			EnableQueueDepth: cfg.Metrics.EnableQueueDepth,
		})
	}

	db, err := database.NewDB(logger, &database.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.DBName,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
		DB:     db,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer container.Close()

	container.Scheduler.Start(cfg.Moderation.Workers)

	srv := server.NewAdminServer(server.AdminServerDI{
		Routers: []router.ServerRouter{
			router.NewAdminRouter(container.MiddlewareTransport, container.HandlerTransport),
		},
		Config: cfg,
		Logger: logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Server.AdminPort).Info("starting admin server")
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.WithError(err).Error("admin server stopped")
		}
	}

	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("failed to shut down admin server")
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Moderation.ShutdownTimeout)
	defer cancel()
	if err := container.Scheduler.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("moderation workers did not finish in time")
	}
	return nil
}
