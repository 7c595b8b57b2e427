package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/emiliopalmerini/mood/internal/adapters/otel"
	"github.com/emiliopalmerini/mood/internal/adapters/turso"
	"github.com/emiliopalmerini/mood/internal/config"
	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/logging"
	"github.com/emiliopalmerini/mood/internal/migrate"
	"github.com/emiliopalmerini/mood/internal/ports"
	"github.com/emiliopalmerini/mood/internal/recording"
)

// testDBOverride allows tests to inject a database connection.
// When set, NewAppContext uses it instead of opening one and never closes it.
var testDBOverride *sql.DB

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config   *config.Config
	Logger   *logging.Logger
	DB       *turso.DB
	SQL      *sql.DB
	Repos    *turso.Repositories
	Exporter ports.MetricsExporter
	Service  *recording.Service
}

// NewAppContext loads configuration, opens the database, applies pending
// migrations and wires the recording service. Extra exporters are notified
// alongside the OTEL exporter.
func NewAppContext(ctx context.Context, extra ...ports.MetricsExporter) (*AppContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Mode)
	if err != nil {
		return nil, err
	}

	a := &AppContext{Config: cfg, Logger: logger}

	if testDBOverride != nil {
		a.SQL = testDBOverride
	} else {
		db, err := turso.NewDB(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Sync(); err != nil {
			logger.Warn("replica sync failed, using local copy", "error", err)
		}
		a.DB = db
		a.SQL = db.DB
	}

	if err := migrate.RunAll(ctx, a.SQL); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	denied, err := parseScopes(cfg.Authorization.DeniedScopes)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("invalid MOOD_DENIED_SCOPES: %w", err)
	}
	a.Repos = turso.NewRepositories(a.SQL, denied)

	a.Exporter = newExporter(ctx, cfg.Telemetry, logger)
	a.Service = recording.NewService(a.Repos.Records, a.Repos.Authorization,
		recording.WithLogger(logger),
		recording.WithExporters(append([]ports.MetricsExporter{a.Exporter}, extra...)...),
	)
	return a, nil
}

// newExporter returns the OTEL exporter, degrading to a no-op when telemetry is
// disabled or the collector cannot be set up.
func newExporter(ctx context.Context, cfg config.Telemetry, logger *logging.Logger) ports.MetricsExporter {
	if !cfg.Enabled {
		return otel.NewNoOpExporter()
	}
	exp, err := otel.NewExporter(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: metrics export disabled: %v\n", err)
		logger.Warn("otel exporter unavailable", "error", err)
		return otel.NewNoOpExporter()
	}
	return exp
}

func parseScopes(names []string) ([]domain.Scope, error) {
	scopes := make([]domain.Scope, 0, len(names))
	for _, name := range names {
		scope, err := domain.ParseScope(name)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}

// Close flushes metrics, pushes replica writes and releases the database.
func (a *AppContext) Close() error {
	if a.Exporter != nil {
		if err := a.Exporter.Close(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to flush metrics: %v\n", err)
		}
	}
	if a.Logger != nil {
		a.Logger.Sync()
	}
	if a.DB != nil {
		if err := a.DB.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to sync replica: %v\n", err)
		}
		return a.DB.Close()
	}
	return nil
}
