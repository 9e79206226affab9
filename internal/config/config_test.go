package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database:  DatabaseConfig{Password: "secret", MaxConns: 10},
		JWT:       JWTConfig{Secret: "jwt", AccessExpiration: "1h"},
		Recompute: RecomputeConfig{Interval: time.Hour, LookbackDays: 31, Concurrency: 4},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing db password", func(c *Config) { c.Database.Password = "" }},
		{"missing jwt secret", func(c *Config) { c.JWT.Secret = "" }},
		{"bad access expiration", func(c *Config) { c.JWT.AccessExpiration = "soon" }},
		{"zero interval", func(c *Config) { c.Recompute.Interval = 0 }},
		{"negative lookback", func(c *Config) { c.Recompute.LookbackDays = -1 }},
		{"zero concurrency", func(c *Config) { c.Recompute.Concurrency = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoad_FromEnv(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME", "DB_SSL_MODE", "DB_MAX_CONNS",
		"JWT_ACCESS_EXPIRATION_TIME", "RECOMPUTE_LOOKBACK_DAYS", "RANGE_CONCURRENCY", "APP_PORT"} {
		t.Setenv(key, "")
	}
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("JWT_SECRET_KEY", "key")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RECOMPUTE_INTERVAL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Recompute.Interval)
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/worktime?sslmode=disable", cfg.DatabaseURL())
}

func TestSlogLevel(t *testing.T) {
	c := validConfig()
	c.App.LogLevel = "DEBUG"
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())
	c.App.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, c.SlogLevel())
}
