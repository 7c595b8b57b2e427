package migrate

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/tursodatabase/go-libsql"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", "file::memory:?cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestLoad_SortedWithDownSQL(t *testing.T) {
	all, err := Load()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), 2)

	for i, m := range all {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.UpSQL)
		assert.NotEmpty(t, m.DownSQL, "migration %d has no down SQL", m.Version)
	}
	assert.Equal(t, "create_mood_records", all[0].Name)
}

func TestSplitSQL_DropsEmptyStatements(t *testing.T) {
	stmts := SplitSQL("CREATE TABLE a (x INT);\n\n ;CREATE TABLE b (y INT);  ")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE TABLE b (y INT)"}, stmts)
}

func TestMigrator_UpAndDown(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	var out bytes.Buffer
	m := New(db, &out)

	applied, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Contains(t, out.String(), "up 1_create_mood_records")
	assert.True(t, tableExists(t, db, "mood_records"))
	assert.True(t, tableExists(t, db, "authorization_grants"))

	version, dirty, err := m.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
	assert.False(t, dirty)

	applied, err = m.Up(ctx)
	require.NoError(t, err)
	assert.Zero(t, applied)

	require.NoError(t, m.To(ctx, 1))
	assert.False(t, tableExists(t, db, "authorization_grants"))
	assert.True(t, tableExists(t, db, "mood_records"))

	require.NoError(t, m.To(ctx, 0))
	assert.False(t, tableExists(t, db, "mood_records"))

	version, _, err = m.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestMigrator_RefusesDirtyDatabase(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()
	m := New(db, nil)

	require.NoError(t, m.EnsureMigrationsTable(ctx))
	require.NoError(t, m.setVersion(ctx, 1, true))

	_, err := m.Up(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dirty state")
}
