package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/emiliopalmerini/mood/migrations"
)

// Migration represents a single database migration with up and down SQL.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

var upPattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// Migrator applies the embedded migrations to a database and reports progress to out.
type Migrator struct {
	db  *sql.DB
	out io.Writer
}

// New creates a Migrator. A nil out discards progress output.
func New(db *sql.DB, out io.Writer) *Migrator {
	if out == nil {
		out = io.Discard
	}
	return &Migrator{db: db, out: out}
}

// EnsureMigrationsTable creates the schema_migrations table if it doesn't exist.
func (m *Migrator) EnsureMigrationsTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

// CurrentVersion returns the current migration version and dirty state.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, bool, error) {
	var version, dirty int

	err := m.db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return version, dirty == 1, nil
}

func (m *Migrator) setVersion(ctx context.Context, version int, dirty bool) error {
	dirtyInt := 0
	if dirty {
		dirtyInt = 1
	}

	if _, err := m.db.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	if version == 0 {
		return nil
	}
	_, err := m.db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, version, dirtyInt)
	return err
}

// Load reads all embedded migration files and returns them sorted by version.
func Load() ([]Migration, error) {
	var result []Migration

	err := fs.WalkDir(migrations.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matches := upPattern.FindStringSubmatch(filepath.Base(path))
		if matches == nil {
			return nil
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return fmt.Errorf("invalid migration version in %s: %w", path, err)
		}
		name := matches[2]

		upSQL, err := fs.ReadFile(migrations.FS, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		// A missing down file only blocks rolling back past this version.
		downSQL, _ := fs.ReadFile(migrations.FS, fmt.Sprintf("%03d_%s.down.sql", version, name))

		result = append(result, Migration{
			Version: version,
			Name:    name,
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})

	return result, nil
}

// Run executes a single migration (up or down).
func (m *Migrator) Run(ctx context.Context, mig Migration, up bool) error {
	direction := "up"
	sqlContent := mig.UpSQL
	targetVersion := mig.Version
	if !up {
		direction = "down"
		sqlContent = mig.DownSQL
		targetVersion = mig.Version - 1
	}

	fmt.Fprintf(m.out, "  %s %d_%s...\n", direction, mig.Version, mig.Name)

	if err := m.setVersion(ctx, mig.Version, true); err != nil {
		return fmt.Errorf("failed to set dirty flag: %w", err)
	}

	for _, stmt := range SplitSQL(sqlContent) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %d %s: %w\nSQL: %s", mig.Version, direction, err, stmt)
		}
	}

	if err := m.setVersion(ctx, targetVersion, false); err != nil {
		return fmt.Errorf("failed to clear dirty flag: %w", err)
	}

	return nil
}

// SplitSQL splits a SQL script on semicolons and drops empty statements.
func SplitSQL(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// prepare ensures the bookkeeping table exists and refuses to touch a dirty database.
func (m *Migrator) prepare(ctx context.Context) (int, []Migration, error) {
	if err := m.EnsureMigrationsTable(ctx); err != nil {
		return 0, nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, dirty, err := m.CurrentVersion(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get current version: %w", err)
	}
	if dirty {
		return 0, nil, fmt.Errorf("database is in dirty state at version %d, manual intervention required", current)
	}

	all, err := Load()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	return current, all, nil
}

// Up runs all pending up migrations and returns how many were applied.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	current, all, err := m.prepare(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range all {
		if mig.Version <= current {
			continue
		}
		if err := m.Run(ctx, mig, true); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// To migrates up or down until the schema is at target.
func (m *Migrator) To(ctx context.Context, target int) error {
	current, all, err := m.prepare(ctx)
	if err != nil {
		return err
	}

	if target >= current {
		for _, mig := range all {
			if mig.Version <= current {
				continue
			}
			if mig.Version > target {
				break
			}
			if err := m.Run(ctx, mig, true); err != nil {
				return err
			}
		}
		return nil
	}

	for i := len(all) - 1; i >= 0; i-- {
		mig := all[i]
		if mig.Version > current {
			continue
		}
		if mig.Version <= target {
			break
		}
		if mig.DownSQL == "" {
			return fmt.Errorf("no down migration for version %d", mig.Version)
		}
		if err := m.Run(ctx, mig, false); err != nil {
			return err
		}
	}

	return nil
}

// RunAll runs all pending migrations without progress output.
func RunAll(ctx context.Context, db *sql.DB) error {
	_, err := New(db, nil).Up(ctx)
	return err
}
