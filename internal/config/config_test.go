package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("PROFILE_DATABASE_DSN", "postgres://profiles")

	cfg, err := FromViper(New())
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.AppPort)
	assert.Equal(t, "None", cfg.StripeKey)
	assert.Equal(t, "None", cfg.MailgunKey)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Domain)
	assert.Equal(t, "", cfg.StorageURL)
	assert.Equal(t, "sid", cfg.SessionCookieName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "profile-images", cfg.StorageProfileBucket)
	assert.Equal(t, 30*time.Second, cfg.StorageTimeout)
	assert.True(t, cfg.AutoMigrate)
}

func TestFromViper_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PROFILE_DATABASE_DSN", "postgres://profiles")
	t.Setenv("STRIPE_KEY", "sk_test_123")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg, err := FromViper(New())
	require.NoError(t, err)

	assert.Equal(t, "sk_test_123", cfg.StripeKey)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.False(t, cfg.AutoMigrate)
}

func TestFromViper_RequiresProfileDatabase(t *testing.T) {
	t.Setenv("PROFILE_DATABASE_DSN", "")

	_, err := FromViper(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROFILE_DATABASE_DSN")
}

func TestFromViper_GeneratesJWTSecret(t *testing.T) {
	t.Setenv("PROFILE_DATABASE_DSN", "postgres://profiles")
	t.Setenv("JWT_SECRET", "")

	first, err := FromViper(New())
	require.NoError(t, err)
	second, err := FromViper(New())
	require.NoError(t, err)

	assert.Len(t, first.JWTSecret, 72)
	assert.NotEqual(t, first.JWTSecret, second.JWTSecret)

	t.Setenv("JWT_SECRET", "configured")
	cfg, err := FromViper(New())
	require.NoError(t, err)
	assert.Equal(t, "configured", cfg.JWTSecret)
}
