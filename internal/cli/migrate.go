package cli

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/mood/internal/adapters/turso"
	"github.com/emiliopalmerini/mood/internal/config"
	"github.com/emiliopalmerini/mood/internal/migrate"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [version]",
		Short: "Run database migrations",
		Long: `Run database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).

Examples:
  mood migrate      # Run all pending migrations
  mood migrate 1    # Migrate to version 1
  mood migrate 0    # Rollback all migrations`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	target := -1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid version %q", args[0])
		}
		target = v
	}

	db := testDBOverride
	if db == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		tdb, err := turso.NewDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			if err := tdb.Sync(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to sync replica: %v\n", err)
			}
			_ = tdb.Close()
		}()
		db = tdb.DB
	}

	return migrateTo(ctx, cmd, db, target)
}

func migrateTo(ctx context.Context, cmd *cobra.Command, db *sql.DB, target int) error {
	out := cmd.OutOrStdout()
	m := migrate.New(db, out)

	if err := m.EnsureMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	current, _, err := m.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	fmt.Fprintf(out, "Current version: %d\n", current)

	if target < 0 {
		applied, err := m.Up(ctx)
		if err != nil {
			return err
		}
		if applied == 0 {
			fmt.Fprintln(out, "No pending migrations")
		}
	} else if err := m.To(ctx, target); err != nil {
		return err
	}

	version, _, err := m.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	fmt.Fprintf(out, "Now at version: %d\n", version)
	return nil
}
