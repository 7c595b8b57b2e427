// Package config loads mood configuration from environment variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Database holds libsql/Turso connection settings. An empty URL selects a local
// database file under the XDG data directory.
type Database struct {
	URL         string `envconfig:"MOOD_DATABASE_URL"`
	AuthToken   string `envconfig:"MOOD_AUTH_TOKEN"`
	ReplicaPath string `envconfig:"MOOD_REPLICA_PATH"`
}

// Authorization configures the grant table.
type Authorization struct {
	// DeniedScopes are refused when authorization is requested.
	DeniedScopes []string `envconfig:"MOOD_DENIED_SCOPES"`
}

// Telemetry holds OTLP exporter configuration.
type Telemetry struct {
	Endpoint string `envconfig:"MOOD_OTEL_ENDPOINT"`
	Enabled  bool   `envconfig:"MOOD_OTEL_ENABLED" default:"false"`
	Insecure bool   `envconfig:"MOOD_OTEL_INSECURE" default:"false"`
}

// Server holds HTTP server configuration.
type Server struct {
	Addr            string        `envconfig:"MOOD_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"MOOD_SHUTDOWN_TIMEOUT" default:"10s"`
}

type Logging struct {
	Mode string `envconfig:"MOOD_LOG_MODE" default:"dev"`
}

// Config is the full application configuration.
type Config struct {
	Database      Database
	Authorization Authorization
	Telemetry     Telemetry
	Server        Server
	Logging       Logging
}

// Load reads every section from the environment. Sections are processed one by one
// so nested struct names do not leak into variable names.
func Load() (*Config, error) {
	var cfg Config
	sections := []any{
		&cfg.Database,
		&cfg.Authorization,
		&cfg.Telemetry,
		&cfg.Server,
		&cfg.Logging,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
