package serviceinterfaces

import "context"

// Lifecycle is implemented by services the container starts and stops
type Lifecycle interface {
	// Startup is called once before the server accepts requests
	Startup(ctx context.Context) error

	// Shutdown releases background resources
	Shutdown(ctx context.Context) error

	// IsReady reports whether the service can serve requests
	IsReady() bool
}
