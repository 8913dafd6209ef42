// Package server runs the HTTP API built from the service container.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"lazverb/internal/config"
	"lazverb/internal/di"
	"lazverb/internal/handlers"
	contextutils "lazverb/internal/utils"
)

// Application encapsulates the HTTP server and the container behind it
type Application struct {
	container *di.ServiceContainer
	server    *http.Server
}

// NewApplication creates the router and the http.Server for an initialized container
func NewApplication(container *di.ServiceContainer) *Application {
	cfg := container.GetConfig()
	router := handlers.NewRouter(cfg, container.RouterDeps(), container.GetLogger())

	return &Application{
		container: container,
		server: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           otelhttp.NewHandler(router, cfg.OpenTelemetry.ServiceName),
			ReadHeaderTimeout: config.ServerReadHeaderTimeout,
		},
	}
}

// Handler returns the instrumented root handler
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

// Serve accepts connections on l until ctx is cancelled, then shuts down gracefully
func (a *Application) Serve(ctx context.Context, l net.Listener) error {
	logger := a.container.GetLogger()
	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	logger.Info(ctx, "HTTP server listening", map[string]interface{}{"addr": l.Addr().String()})

	select {
	case err := <-serverErr:
		if err != nil {
			return contextutils.WrapError(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return contextutils.WrapError(err, "server shutdown failed")
	}
	return nil
}

// Run listens on the configured port and serves until ctx is cancelled
func (a *Application) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to listen on %s", a.server.Addr)
	}
	return a.Serve(ctx, l)
}

// Shutdown releases the services behind the server
func (a *Application) Shutdown(ctx context.Context) error {
	return a.container.Shutdown(ctx)
}
