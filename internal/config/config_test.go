package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("ENGINE_YEAR_POLICY", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("REDIS_ENABLED", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "nearest", cfg.Engine.YearPolicy)
	assert.Equal(t, "VPP Jewellers", cfg.Wish.CompanyName)
	assert.False(t, cfg.Auth.AdminEnabled())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "*", cfg.App.CORSAllowedOrigins)
}

func TestLoadRedisDisabled(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://crm.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "https://crm.example.com", cfg.App.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "30")
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("WISH_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL())
	assert.True(t, cfg.Auth.AdminEnabled())
	assert.False(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, 15*time.Second, cfg.Wish.Timeout())
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	_, err := Load()
	assert.Error(t, err)
}

func TestEngineLocation(t *testing.T) {
	loc, err := EngineConfig{Timezone: "UTC"}.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = EngineConfig{}.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	_, err = EngineConfig{Timezone: "Mars/Olympus"}.LoadLocation()
	assert.Error(t, err)
}
