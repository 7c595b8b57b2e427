package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/mood/internal/adapters/otel"
	"github.com/emiliopalmerini/mood/internal/config"
	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/logging"
)

func TestAppContextClose_NilDB(t *testing.T) {
	a := &AppContext{}
	if err := a.Close(); err != nil {
		t.Errorf("Close() on nil DB should not error, got: %v", err)
	}
}

func TestParseScopes(t *testing.T) {
	scopes, err := parseScopes([]string{"Mindful Session", "state_of_mind"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Scope{domain.ScopeMindfulSession, domain.ScopeStateOfMind}, scopes)

	_, err = parseScopes([]string{"sleep"})
	assert.Error(t, err)
}

func TestNewExporter_DegradesToNoOp(t *testing.T) {
	exp := newExporter(context.Background(), config.Telemetry{Enabled: false}, logging.NewNop())
	assert.IsType(t, &otel.NoOpExporter{}, exp)

	exp = newExporter(context.Background(), config.Telemetry{Enabled: true}, logging.NewNop())
	assert.IsType(t, &otel.NoOpExporter{}, exp, "missing endpoint falls back to no-op")
}

func TestNewAppContext_DeniedScopes(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	useDB(t, db)
	t.Setenv("MOOD_DENIED_SCOPES", "mindful_session")

	app, err := NewAppContext(context.Background())
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	granted, err := app.Service.RequestAuthorization(context.Background(), domain.ScopeMindfulSession)
	require.NoError(t, err)
	assert.False(t, granted)

	t.Setenv("MOOD_DENIED_SCOPES", "sleep")
	_, err = NewAppContext(context.Background())
	assert.ErrorContains(t, err, "MOOD_DENIED_SCOPES")
}
