package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "SESSION_TTL_HOURS", "TRANSFER_TTL_MINUTES", "CLIENT_TOKEN_SECRET", "DEMO_PASSWORD", "LOGIN_LATENCY_MS", "ALLOWED_ORIGINS", "TEMPORAL_DISABLED"} {
		t.Setenv(key, "")
	}
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "demo123", cfg.DemoPassword)
	assert.Equal(t, 1500*time.Millisecond, cfg.LoginLatency)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, devClientTokenSecret, cfg.ClientTokenSecret)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Production())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("TRANSFER_TTL_MINUTES", "15")
	t.Setenv("LOGIN_LATENCY_MS", "0")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TEMPORAL_DISABLED", "true")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.TransferTTL)
	assert.Zero(t, cfg.LoginLatency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.TemporalDisabled)
}

func TestLoadConfig_Rejects(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "-1")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CLIENT_TOKEN_SECRET", "")
	_, err = LoadConfig()
	require.ErrorContains(t, err, "CLIENT_TOKEN_SECRET")
}
