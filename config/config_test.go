package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Second, cfg.BlobTimeout)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{
		DBDriver:      "sqlite",
		AdminPassword: "pw",
		JWTSecret:     "s",
		SessionTTL:    time.Hour,
		BlobTimeout:   time.Second,
		MaxUploadMB:   1,
	}
	require.NoError(t, base.Validate())

	noSecret := base
	noSecret.AdminPassword = "  "
	assert.Error(t, noSecret.Validate())

	hashOnly := noSecret
	hashOnly.AdminPasswordHash = "$2a$10$abc"
	assert.NoError(t, hashOnly.Validate())

	badDriver := base
	badDriver.DBDriver = "mysql"
	assert.Error(t, badDriver.Validate())

	badTTL := base
	badTTL.SessionTTL = 0
	assert.Error(t, badTTL.Validate())
}
