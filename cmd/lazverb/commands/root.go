// Package commands provides the subcommands of the lazverb CLI
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"lazverb/internal/config"
	"lazverb/internal/di"
	"lazverb/internal/observability"
)

// Env carries what every subcommand needs
type Env struct {
	Config *config.Config
	Logger *observability.Logger
	// Telemetry is the OpenTelemetry configuration as loaded, before the CLI disabled exporters
	Telemetry config.OpenTelemetryConfig
}

// NewRootCommand builds the lazverb command tree
func NewRootCommand(env *Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "lazverb",
		Short: "Laz verb conjugator",
		Long: `Laz verb conjugator

Conjugates Laz verbs for the Ardeşen, Hopa, Fındıklı-Arhavi and Pazar dialects,
manages the verb catalog and runs the HTTP API.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	root.AddCommand(conjugateCmd(env))
	root.AddCommand(VerbCommands(env))
	root.AddCommand(serveCmd(env))
	root.AddCommand(versionCmd())
	return root
}

// startContainer initializes the services a command needs; callers shut it down
func startContainer(ctx context.Context, env *Env, opts ...di.Option) (*di.ServiceContainer, error) {
	container := di.NewServiceContainer(env.Config, env.Logger, opts...)
	if err := container.Initialize(ctx); err != nil {
		return nil, err
	}
	return container, nil
}
