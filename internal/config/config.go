package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Server
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8081"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
	SwaggerEnabled  bool          `env:"SWAGGER_ENABLED" envDefault:"true"`

	// Alert headers: X-<AppName>-alert / X-<AppName>-params
	AppName string `env:"APP_NAME" envDefault:"kinvoiceApp"`

	// Database; empty URL selects the in-memory store
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"5"`

	// Paging
	PageDefaultSize int `env:"PAGE_DEFAULT_SIZE" envDefault:"20"`
	PageMaxSize     int `env:"PAGE_MAX_SIZE" envDefault:"2000"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.PageDefaultSize <= 0 || cfg.PageMaxSize < cfg.PageDefaultSize {
		return nil, fmt.Errorf("parse config: invalid page sizes %d/%d", cfg.PageDefaultSize, cfg.PageMaxSize)
	}
	return cfg, nil
}

func (c *Config) UseMemoryStore() bool { return c.DatabaseURL == "" }

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
