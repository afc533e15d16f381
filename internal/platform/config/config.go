package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Server       Server
	Redis        RedisConfig
	Postgres     PostgresConfig
	Cases        CasesConfig
	Exposure     ExposureConfig
	Interactions InteractionConfig
	Log          LogConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

// RedisConfig sizes the shared key-value pool.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"20"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// PostgresConfig sizes the shared relational pool.
type PostgresConfig struct {
	URL             string        `env:"POSTGRES_URL"`
	Driver          string        `env:"POSTGRES_DRIVER" envDefault:"pq"`
	MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// CasesConfig bounds case-index reads.
type CasesConfig struct {
	MaxLookback time.Duration `env:"CASES_MAX_LOOKBACK" envDefault:"720h"`
}

// ExposureConfig bounds relational fan-out.
type ExposureConfig struct {
	FanoutLimit int `env:"FANOUT_LIMIT" envDefault:"10"`
}

// InteractionConfig selects where interaction links live and how long they
// resolve.
type InteractionConfig struct {
	Backend       string        `env:"INTERACTION_BACKEND" envDefault:"redis"`
	TTL           time.Duration `env:"INTERACTION_TTL" envDefault:"168h"`
	PurgeSchedule string        `env:"PURGE_SCHEDULE" envDefault:"@hourly"`
	Geo           string        `env:"INTERACTION_GEO"`
}

// LogConfig controls the slog handler and the optional rotating file sink.
type LogConfig struct {
	Level    string        `env:"LOG_LEVEL" envDefault:"info"`
	Format   string        `env:"LOG_FORMAT" envDefault:"json"`
	Path     string        `env:"LOG_PATH"`
	Rotation time.Duration `env:"LOG_ROTATION" envDefault:"24h"`
	MaxAge   time.Duration `env:"LOG_MAX_AGE" envDefault:"168h"`
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks all configuration fields.
func (c *Config) Validate() error {
	switch c.Postgres.Driver {
	case "pq", "pgx":
	default:
		return fmt.Errorf("postgres: invalid driver %q, must be pq or pgx", c.Postgres.Driver)
	}
	switch c.Interactions.Backend {
	case "redis":
	case "postgres":
		if c.Postgres.URL == "" {
			return fmt.Errorf("interactions: postgres backend requires POSTGRES_URL")
		}
	default:
		return fmt.Errorf("interactions: invalid backend %q, must be redis or postgres", c.Interactions.Backend)
	}
	if c.Interactions.TTL <= 0 {
		return fmt.Errorf("interactions: ttl must be positive")
	}
	if c.Cases.MaxLookback < time.Hour {
		return fmt.Errorf("cases: max lookback must be at least one hour")
	}
	if c.Exposure.FanoutLimit <= 0 {
		return fmt.Errorf("exposure: fanout limit must be positive")
	}
	if c.Redis.URL == "" {
		return fmt.Errorf("redis: url is required")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log: invalid format %q", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: invalid level %q", c.Log.Level)
	}
	return nil
}
