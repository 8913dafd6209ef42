// Package database opens the verb catalog database and applies its migrations.
package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.nhat.io/otelsql"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	_ "modernc.org/sqlite"

	"lazverb/internal/config"
	"lazverb/internal/observability"
	contextutils "lazverb/internal/utils"
)

//go:embed migrations
var migrationsFS embed.FS

// Dialect is the SQL backend behind a database URL
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectFor picks the backend from the URL scheme. Anything that is not postgres is a sqlite path.
func DialectFor(databaseURL string) Dialect {
	lower := strings.ToLower(databaseURL)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// dataSource strips the sqlite:// prefix, which the modernc driver does not accept
func dataSource(dialect Dialect, databaseURL string) string {
	if dialect == DialectSQLite {
		return strings.TrimPrefix(databaseURL, "sqlite://")
	}
	return databaseURL
}

// Manager handles database operations with proper logging
type Manager struct {
	logger *observability.Logger
}

// NewManager creates a new database manager with the provided logger
func NewManager(logger *observability.Logger) *Manager {
	return &Manager{logger: logger}
}

var (
	otelDriverMu    sync.Mutex
	otelDriverNames = map[Dialect]string{}
)

// registerDriver wraps the backend driver with otelsql once per process and dialect
func registerDriver(dialect Dialect, dbName string) (string, error) {
	otelDriverMu.Lock()
	defer otelDriverMu.Unlock()
	if name, ok := otelDriverNames[dialect]; ok {
		return name, nil
	}

	system := semconv.DBSystemSqlite
	if dialect == DialectPostgres {
		system = semconv.DBSystemPostgreSQL
	}
	name, err := otelsql.Register(string(dialect),
		otelsql.WithDatabaseName(dbName),
		otelsql.WithSystem(system),
		otelsql.TraceQueryWithArgs(),
		otelsql.TraceRowsAffected(),
	)
	if err != nil {
		return "", err
	}
	otelDriverNames[dialect] = name
	return name, nil
}

// extractDatabaseName returns the database name of a postgres URL or the sqlite file path
func extractDatabaseName(dialect Dialect, databaseURL string) string {
	if dialect == DialectSQLite {
		return dataSource(dialect, databaseURL)
	}
	if u, err := url.Parse(databaseURL); err == nil {
		if name := strings.TrimPrefix(u.Path, "/"); name != "" {
			return name
		}
	}
	return "lazverb"
}

// InitDB opens the database and applies every pending migration
func (dm *Manager) InitDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	db, dialect, err := dm.Open(ctx, cfg)
	if err != nil {
		return nil, "", err
	}
	if err := dm.RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, "", err
	}
	return db, dialect, nil
}

// Open connects through the instrumented driver and pings the database
func (dm *Manager) Open(ctx context.Context, cfg config.DatabaseConfig) (result *sql.DB, dialect Dialect, err error) {
	dialect = DialectFor(cfg.URL)
	dbName := extractDatabaseName(dialect, cfg.URL)
	ctx, span := observability.TraceDatabaseFunction(ctx, "open",
		attribute.String("db.system", string(dialect)),
		attribute.String("db.name", dbName),
		attribute.Int("db.max_open_conns", cfg.MaxOpenConns),
	)
	defer observability.FinishSpan(span, &err)

	driverName, err := registerDriver(dialect, dbName)
	if err != nil {
		return nil, "", contextutils.WrapError(err, "failed to register otelsql driver")
	}

	db, err := sql.Open(driverName, dataSource(dialect, cfg.URL))
	if err != nil {
		return nil, "", contextutils.WrapError(err, "failed to open database connection")
	}

	if dialect == DialectSQLite {
		// sqlite has a single writer
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			dm.logger.Error(ctx, "Failed to close database connection after ping failure", closeErr)
		}
		return nil, "", contextutils.ErrDatabaseConnection.WithDetails("%v", err)
	}

	dm.logger.Info(ctx, "Database connection established", map[string]interface{}{
		"dialect":           string(dialect),
		"database":          dbName,
		"max_open_conns":    cfg.MaxOpenConns,
		"conn_max_lifetime": cfg.ConnMaxLifetime.String(),
	})
	return db, dialect, nil
}

// RunMigrations applies the embedded migrations for dialect
func (dm *Manager) RunMigrations(ctx context.Context, db *sql.DB, dialect Dialect) (err error) {
	ctx, span := observability.TraceDatabaseFunction(ctx, "run_migrations",
		attribute.String("db.system", string(dialect)),
		attribute.String("migration.type", "golang_migrate"),
	)
	defer observability.FinishSpan(span, &err)

	source, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return contextutils.WrapError(err, "failed to open embedded migrations")
	}

	var driver migratedb.Driver
	switch dialect {
	case DialectPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	}
	if err != nil {
		return contextutils.WrapError(err, "failed to initialize migration driver")
	}

	// Closing the migrate instance would close db as well, so only the source is released
	defer func() { _ = source.Close() }()

	m, err := migrate.NewWithInstance("iofs", source, string(dialect), driver)
	if err != nil {
		return contextutils.WrapError(err, "failed to initialize golang-migrate")
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		dm.logger.Info(ctx, "No new migrations to apply")
		return nil
	case err != nil:
		return contextutils.WrapError(err, "golang-migrate up failed")
	}

	version, _, _ := m.Version()
	span.SetAttributes(attribute.Int("migration.version", int(version)))
	dm.logger.Info(ctx, "Migrations applied", map[string]interface{}{"version": version})
	return nil
}
