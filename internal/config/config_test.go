package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "JWT_SECRET", "DB_DRIVER", "MYSQL_DSN", "JWT_TTL", "MATCH_DEFAULT_LIMIT", "MATCH_MAX_LIMIT", "REDIS_DB"} {
		t.Setenv(k, "")
	}

	cfg := New()

	assert.Equal(t, "production", cfg.App.ENV)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Contains(t, cfg.DB.DSN, "@tcp(localhost:3306)/skillswap")
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Match.DefaultLimit)
	assert.Equal(t, 50, cfg.Match.MaxLimit)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("MYSQL_DSN", "u:p@tcp(db:3306)/x")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("MATCH_DEFAULT_LIMIT", "7")
	t.Setenv("MATCH_MAX_LIMIT", "20")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_SOURCE", "yes")

	cfg := New()

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "u:p@tcp(db:3306)/x", cfg.DB.DSN)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 7, cfg.Match.DefaultLimit)
	assert.Equal(t, 20, cfg.Match.MaxLimit)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Log.Source)
}

func TestNew_DefaultLimitClampedToMax(t *testing.T) {
	t.Setenv("MATCH_DEFAULT_LIMIT", "100")
	t.Setenv("MATCH_MAX_LIMIT", "25")

	cfg := New()

	assert.Equal(t, 25, cfg.Match.DefaultLimit)
}

func TestJWTSecret_DevDefaultOnlyInDevelopment(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	t.Setenv("APP_ENV", "development")
	cfg := New()
	assert.Equal(t, DevJWTSecret, cfg.Auth.JWTSecret)
	assert.NoError(t, cfg.Validate())

	for _, env := range []string{"production", "staging"} {
		t.Setenv("APP_ENV", env)
		cfg = New()
		assert.Empty(t, cfg.Auth.JWTSecret, env)
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET is required", env)
	}

	t.Setenv("JWT_SECRET", "s3cret")
	cfg = New()
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.NoError(t, cfg.Validate())
}
