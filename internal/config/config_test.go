package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "dev", cfg.Logging.Mode)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("MOOD_DATABASE_URL", "libsql://mood-example.turso.io")
	t.Setenv("MOOD_AUTH_TOKEN", "secret")
	t.Setenv("MOOD_DENIED_SCOPES", "state_of_mind,mindful_session")
	t.Setenv("MOOD_OTEL_ENABLED", "true")
	t.Setenv("MOOD_OTEL_ENDPOINT", "localhost:4317")
	t.Setenv("MOOD_ADDR", ":3000")
	t.Setenv("MOOD_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("MOOD_LOG_MODE", "prod")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "libsql://mood-example.turso.io", cfg.Database.URL)
	assert.Equal(t, "secret", cfg.Database.AuthToken)
	assert.Equal(t, []string{"state_of_mind", "mindful_session"}, cfg.Authorization.DeniedScopes)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.Endpoint)
	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "prod", cfg.Logging.Mode)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("MOOD_SHUTDOWN_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
