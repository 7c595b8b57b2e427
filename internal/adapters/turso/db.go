package turso

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/mood/internal/config"
	"github.com/emiliopalmerini/mood/internal/util"
)

// DB wraps the libsql connection. When an embedded replica is configured the
// connector is kept so the replica can be synced with the primary.
type DB struct {
	*sql.DB
	connector *libsql.Connector
}

// NewDB opens the database described by cfg.
//
//   - URL empty: local file mood.db under the XDG data directory.
//   - URL "file:...": local file.
//   - ReplicaPath set: embedded replica of the remote URL.
//   - otherwise: remote Turso database.
func NewDB(cfg config.Database) (*DB, error) {
	switch {
	case cfg.URL == "":
		dataDir, err := util.GetXDGDataDir()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return openLocal("file:" + filepath.Join(dataDir, "mood.db"))

	case strings.HasPrefix(cfg.URL, "file:"):
		return openLocal(cfg.URL)

	case cfg.ReplicaPath != "":
		return openReplica(cfg)

	default:
		return openRemote(cfg)
	}
}

func openLocal(dsn string) (*DB, error) {
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{DB: db}, nil
}

func openReplica(cfg config.Database) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.ReplicaPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create replica directory: %w", err)
	}

	connector, err := libsql.NewEmbeddedReplicaConnector(cfg.ReplicaPath, cfg.URL,
		libsql.WithAuthToken(cfg.AuthToken),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create replica connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	return &DB{DB: db, connector: connector}, nil
}

func openRemote(cfg config.Database) (*DB, error) {
	if cfg.AuthToken == "" {
		return nil, fmt.Errorf("MOOD_AUTH_TOKEN is required for remote database %s", cfg.URL)
	}

	db, err := sql.Open("libsql", cfg.URL+"?authToken="+cfg.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Turso aggressively closes idle Hrana streams, so never keep idle connections.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{DB: db}, nil
}

// Sync pulls the primary's changes into the embedded replica. No-op otherwise.
func (d *DB) Sync() error {
	if d.connector == nil {
		return nil
	}
	if _, err := d.connector.Sync(); err != nil {
		return fmt.Errorf("failed to sync replica: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	err := d.DB.Close()
	if d.connector != nil {
		if cerr := d.connector.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
