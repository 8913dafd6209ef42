// Package di provides dependency injection container for managing service lifecycle and dependencies.
package di

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"lazverb/internal/config"
	"lazverb/internal/database"
	"lazverb/internal/handlers"
	"lazverb/internal/lexicon"
	"lazverb/internal/observability"
	"lazverb/internal/serviceinterfaces"
	"lazverb/internal/services"
	contextutils "lazverb/internal/utils"
)

// ServiceContainerInterface defines the interface for service containers
type ServiceContainerInterface interface {
	GetConjugationService() services.ConjugationServiceInterface
	GetDictionaryService() services.DictionaryServiceInterface
	// GetCatalogService returns nil when the catalog database is unavailable
	GetCatalogService() services.CatalogServiceInterface
	GetDatabase() *sql.DB
	GetConfig() *config.Config
	GetLogger() *observability.Logger
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Option customizes the container
type Option func(*ServiceContainer)

// WithoutCatalog skips the catalog database entirely
func WithoutCatalog() Option {
	return func(sc *ServiceContainer) { sc.catalogEnabled = false }
}

// WithoutCatalogSync keeps the catalog as is instead of mirroring the dictionary into it
func WithoutCatalogSync() Option {
	return func(sc *ServiceContainer) { sc.syncCatalog = false }
}

type namedLifecycle struct {
	name    string
	service serviceinterfaces.Lifecycle
}

// ServiceContainer manages all service dependencies and lifecycle
type ServiceContainer struct {
	cfg            *config.Config
	logger         *observability.Logger
	catalogEnabled bool
	syncCatalog    bool

	dbManager   *database.Manager
	db          *sql.DB
	dictionary  *services.DictionaryService
	conjugation *services.ConjugationService
	catalog     *services.CatalogService

	mu            sync.RWMutex
	lifecycle     []namedLifecycle
	shutdownFuncs []func(context.Context) error
}

// NewServiceContainer creates a new dependency injection container
func NewServiceContainer(cfg *config.Config, logger *observability.Logger, opts ...Option) *ServiceContainer {
	sc := &ServiceContainer{
		cfg:            cfg,
		logger:         logger,
		catalogEnabled: true,
		syncCatalog:    true,
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// Initialize loads the dictionary, opens the catalog and starts every lifecycle service.
// A catalog that cannot be opened is logged and skipped; the API then lists verbs from the dictionary.
func (sc *ServiceContainer) Initialize(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.dictionary = services.NewDictionaryService(sc.cfg.Dictionary, sc.logger)
	sc.lifecycle = append(sc.lifecycle, namedLifecycle{name: "dictionary", service: sc.dictionary})

	if err := sc.startupServices(ctx); err != nil {
		_ = sc.cleanup(ctx)
		return contextutils.WrapErrorf(err, "failed to startup services")
	}

	sc.conjugation = services.NewConjugationService(sc.dictionary.Current(), sc.cfg, sc.logger)
	sc.dictionary.OnReload(sc.conjugation.UseDictionary)

	if sc.catalogEnabled {
		sc.initializeCatalog(ctx)
	}
	return nil
}

func (sc *ServiceContainer) initializeCatalog(ctx context.Context) {
	sc.dbManager = database.NewManager(sc.logger)
	db, dialect, err := sc.dbManager.InitDB(ctx, sc.cfg.Database)
	if err != nil {
		sc.logger.Warn(ctx, "Catalog database unavailable, verb listing falls back to the dictionary", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	sc.db = db
	sc.shutdownFuncs = append(sc.shutdownFuncs, func(_ context.Context) error {
		return db.Close()
	})
	sc.catalog = services.NewCatalogService(db, dialect, sc.logger)

	if !sc.syncCatalog {
		return
	}
	sc.importSources(ctx)
	sc.dictionary.OnReload(func(*lexicon.Dictionary) {
		sc.importSources(context.Background())
	})
}

// importSources mirrors the configured tables into the catalog. Failures leave the catalog as it was.
func (sc *ServiceContainer) importSources(ctx context.Context) {
	sources, err := sc.dictionary.Sources(ctx)
	if err == nil {
		_, err = sc.catalog.Import(ctx, sources)
	}
	if err != nil {
		sc.logger.Error(ctx, "Catalog sync failed", err)
	}
}

// GetConjugationService returns the conjugation service
func (sc *ServiceContainer) GetConjugationService() services.ConjugationServiceInterface {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.conjugation
}

// GetDictionaryService returns the dictionary service
func (sc *ServiceContainer) GetDictionaryService() services.DictionaryServiceInterface {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.dictionary
}

// GetDictionaryLifecycle returns the dictionary service as a lifecycle for readiness checks
func (sc *ServiceContainer) GetDictionaryLifecycle() serviceinterfaces.Lifecycle {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.dictionary
}

// GetCatalogService returns the catalog service, or nil without a database
func (sc *ServiceContainer) GetCatalogService() services.CatalogServiceInterface {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.catalog == nil {
		return nil
	}
	return sc.catalog
}

// RouterDeps returns the services the HTTP router is built from
func (sc *ServiceContainer) RouterDeps() handlers.RouterDeps {
	return handlers.RouterDeps{
		Conjugation: sc.GetConjugationService(),
		Catalog:     sc.GetCatalogService(),
		Dictionary:  sc.GetDictionaryLifecycle(),
	}
}

// GetDatabase returns the database instance
func (sc *ServiceContainer) GetDatabase() *sql.DB {
	return sc.db
}

// GetConfig returns the configuration
func (sc *ServiceContainer) GetConfig() *config.Config {
	return sc.cfg
}

// GetLogger returns the logger
func (sc *ServiceContainer) GetLogger() *observability.Logger {
	return sc.logger
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.cleanup(ctx)
}

// startupServices starts lifecycle services in registration order
func (sc *ServiceContainer) startupServices(ctx context.Context) error {
	for _, entry := range sc.lifecycle {
		sc.logger.Info(ctx, "Starting service", map[string]interface{}{"service": entry.name})
		if err := entry.service.Startup(ctx); err != nil {
			return contextutils.WrapErrorf(err, "failed to startup service %s", entry.name)
		}
		sc.logger.Info(ctx, "Service started successfully", map[string]interface{}{"service": entry.name})
	}
	return nil
}

// cleanup stops lifecycle services in reverse order, then runs the shutdown functions
func (sc *ServiceContainer) cleanup(ctx context.Context) error {
	var errs []error

	for i := len(sc.lifecycle) - 1; i >= 0; i-- {
		entry := sc.lifecycle[i]
		sc.logger.Info(ctx, "Shutting down service", map[string]interface{}{"service": entry.name})
		if err := entry.service.Shutdown(ctx); err != nil {
			sc.logger.Error(ctx, "Failed to shutdown service", err, map[string]interface{}{"service": entry.name})
			errs = append(errs, contextutils.WrapErrorf(err, "service %s shutdown failed", entry.name))
		}
	}
	sc.lifecycle = nil

	for i := len(sc.shutdownFuncs) - 1; i >= 0; i-- {
		if err := sc.shutdownFuncs[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	sc.shutdownFuncs = nil

	if len(errs) > 0 {
		return contextutils.WrapError(errors.Join(errs...), "shutdown errors")
	}
	return nil
}
