package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tenant-admin-api", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())

	assert.Equal(t, "tenant-admin", cfg.Auth.Issuer)
	assert.Equal(t, "tenant-admin-api", cfg.Auth.Audience)
	assert.Equal(t, 8*time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 10, cfg.Auth.LoginAttemptLimit)
	assert.Equal(t, 5*time.Minute, cfg.Auth.LoginAttemptWindow())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_HOURS", "1")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_DAYS", "30")
	t.Setenv("AUTH_JWT_ISSUER", "staging-issuer")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.RefreshTokenTTL())
	assert.Equal(t, "staging-issuer", cfg.Auth.Issuer)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestTTLFallbacksOnNonPositiveValues(t *testing.T) {
	auth := AuthConfig{}
	assert.Equal(t, 8*time.Hour, auth.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, auth.RefreshTokenTTL())
	assert.Equal(t, 5*time.Minute, auth.LoginAttemptWindow())

	app := AppConfig{}
	assert.Equal(t, time.Duration(0), app.RequestTimeout())
}
