// Package main provides the entry point for the lazverb HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lazverb/internal/config"
	"lazverb/internal/di"
	"lazverb/internal/observability"
	"lazverb/internal/server"
	"lazverb/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.OpenTelemetry.ServiceVersion = version.Version

	telemetry, err := observability.SetupObservability(&cfg.OpenTelemetry, "", cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}
	logger := telemetry.Logger
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn(shutdownCtx, "Error shutting down telemetry", map[string]interface{}{"error": err.Error()})
		}
	}()

	logger.Info(ctx, "Starting lazverb server", map[string]interface{}{
		"port":      cfg.Server.Port,
		"log_level": cfg.Server.LogLevel,
		"version":   version.Get().String(),
	})

	container := di.NewServiceContainer(cfg, logger)
	if err := container.Initialize(ctx); err != nil {
		logger.Error(ctx, "Failed to initialize services", err)
		os.Exit(1)
	}

	app := server.NewApplication(container)
	runErr := app.Run(ctx)
	if err := app.Shutdown(context.Background()); err != nil {
		logger.Warn(context.Background(), "Error shutting down services", map[string]interface{}{"error": err.Error()})
	}
	if runErr != nil {
		logger.Error(context.Background(), "Server failed", runErr)
		os.Exit(1)
	}
	logger.Info(context.Background(), "Server stopped")
}
