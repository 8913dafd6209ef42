package config

import "time"

// Defaults
const (
	DefaultPort           = "8080"
	DefaultServiceName    = "lazverb"
	DefaultDatabaseURL    = "lazverb.db"
	DefaultSessionSecret  = "lazverb-development-secret"
	DefaultRequestTimeout = 10 * time.Second
)

// Timeout constants
const (
	// HTTP timeouts
	DefaultHTTPTimeout      = 60 * time.Second
	ServerShutdownTimeout   = 15 * time.Second
	ServerReadHeaderTimeout = 10 * time.Second

	// Database timeouts
	DatabaseConnMaxLifetime = 5 * time.Minute

	// Session timeouts
	SessionMaxAge = 30 * 24 * time.Hour

	// Dictionary reload debounce
	DictionaryReloadDelay = 250 * time.Millisecond
)

// Session configuration constants
const (
	SessionPath     = "/"
	SessionHTTPOnly = true
	SessionSecure   = false // Set to true in production with HTTPS

	SessionName = "lazverb-session"

	// SessionRegionKey stores the default region filter
	SessionRegionKey = "regions"
)

// Security configuration constants
const (
	DefaultCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:;"
)

// Catalog paging
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
