package turso_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/migrate"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := migrate.RunAll(ctx, db); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testRecord(t *testing.T, kind domain.Kind, at time.Time) *domain.NormalizedRecord {
	t.Helper()

	labels, err := domain.NewLabelSet(domain.LabelHappy, domain.LabelCalm)
	if err != nil {
		t.Fatal(err)
	}
	assocs, err := domain.NewAssociationSet(domain.AssociationFamily)
	if err != nil {
		t.Fatal(err)
	}

	rec, err := domain.NewRecordBuilder(nil).Build(domain.MoodObservation{
		Valence:      domain.Pleasant,
		Labels:       labels,
		Associations: assocs,
		Notes:        "walk in the park",
		Timestamp:    &at,
	}, kind)
	if err != nil {
		t.Fatal(err)
	}
	return &rec
}
