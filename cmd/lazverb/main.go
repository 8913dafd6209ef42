// Package main provides the lazverb command line tool.
package main

import (
	"context"
	"fmt"
	"os"

	"lazverb/cmd/lazverb/commands"
	"lazverb/internal/config"
	"lazverb/internal/observability"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Exporters stay off for one-shot commands; serve turns them back on from the file
	otel := cfg.OpenTelemetry
	cfg.OpenTelemetry.EnableTracing = false
	cfg.OpenTelemetry.EnableMetrics = false
	cfg.OpenTelemetry.EnableLogging = false

	logger := observability.NewLoggerWithLevel(&cfg.OpenTelemetry, observability.ParseLevel("error"))
	env := &commands.Env{Config: cfg, Logger: logger, Telemetry: otel}

	if err := commands.NewRootCommand(env).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
