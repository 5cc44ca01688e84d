package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()

	assert.Equal(t, "Kindred", cfg.AppName)
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 6*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRY", "12h")
	t.Setenv("BCRYPT_COST", "12")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.IsProduction())
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY", "not-a-duration")
	t.Setenv("BCRYPT_COST", "not-an-int")

	cfg := Load()

	assert.Equal(t, 6*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.BcryptCost)
}
