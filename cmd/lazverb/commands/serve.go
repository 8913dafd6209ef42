package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lazverb/internal/config"
	"lazverb/internal/observability"
	"lazverb/internal/server"
	"lazverb/internal/version"
)

func serveCmd(env *Env) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := env.Config
			if port != "" {
				cfg.Server.Port = port
			}
			cfg.OpenTelemetry = env.Telemetry
			cfg.OpenTelemetry.ServiceVersion = version.Version

			telemetry, err := observability.SetupObservability(&cfg.OpenTelemetry, "", cfg.Server.LogLevel)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
				defer cancel()
				_ = telemetry.Shutdown(shutdownCtx)
			}()

			serveEnv := &Env{Config: cfg, Logger: telemetry.Logger, Telemetry: env.Telemetry}
			container, err := startContainer(ctx, serveEnv)
			if err != nil {
				return err
			}
			app := server.NewApplication(container)
			defer func() { _ = app.Shutdown(context.Background()) }()

			return app.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port, overrides server.port")
	return cmd
}
