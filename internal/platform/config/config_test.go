package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("POSTGRES_URL", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Exposure.FanoutLimit)
	assert.Equal(t, "redis", cfg.Interactions.Backend)
	assert.Equal(t, 7*24*time.Hour, cfg.Interactions.TTL)
	assert.Equal(t, "@hourly", cfg.Interactions.PurgeSchedule)
	assert.Equal(t, "pq", cfg.Postgres.Driver)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 30*24*time.Hour, cfg.Cases.MaxLookback)
	assert.Empty(t, cfg.Interactions.Geo)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("FANOUT_LIMIT", "4")
	t.Setenv("INTERACTION_BACKEND", "postgres")
	t.Setenv("POSTGRES_URL", "postgres://ct:ct@localhost:5432/ct?sslmode=disable")
	t.Setenv("POSTGRES_DRIVER", "pgx")
	t.Setenv("INTERACTION_TTL", "1h")
	t.Setenv("INTERACTION_GEO", "dk")
	t.Setenv("CASES_MAX_LOOKBACK", "336h")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Exposure.FanoutLimit)
	assert.Equal(t, "postgres", cfg.Interactions.Backend)
	assert.Equal(t, "pgx", cfg.Postgres.Driver)
	assert.Equal(t, time.Hour, cfg.Interactions.TTL)
	assert.Equal(t, "dk", cfg.Interactions.Geo)
	assert.Equal(t, 14*24*time.Hour, cfg.Cases.MaxLookback)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Redis:        RedisConfig{URL: "redis://localhost:6379/0"},
			Postgres:     PostgresConfig{Driver: "pq"},
			Cases:        CasesConfig{MaxLookback: 24 * time.Hour},
			Exposure:     ExposureConfig{FanoutLimit: 10},
			Interactions: InteractionConfig{Backend: "redis", TTL: time.Hour},
			Log:          LogConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Postgres.Driver = "mysql" }, wantErr: "invalid driver"},
		{name: "postgres backend needs url", mutate: func(c *Config) { c.Interactions.Backend = "postgres" }, wantErr: "requires POSTGRES_URL"},
		{name: "unknown backend", mutate: func(c *Config) { c.Interactions.Backend = "memcached" }, wantErr: "invalid backend"},
		{name: "zero ttl", mutate: func(c *Config) { c.Interactions.TTL = 0 }, wantErr: "ttl must be positive"},
		{name: "lookback under an hour", mutate: func(c *Config) { c.Cases.MaxLookback = time.Minute }, wantErr: "max lookback"},
		{name: "zero fanout", mutate: func(c *Config) { c.Exposure.FanoutLimit = 0 }, wantErr: "fanout limit must be positive"},
		{name: "missing redis url", mutate: func(c *Config) { c.Redis.URL = "" }, wantErr: "url is required"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "invalid format"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "invalid level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
