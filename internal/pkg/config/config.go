package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string        `env:"PORT,           default=8080"`
	Env           string        `env:"ENV,            default=development"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	JWTSecret     string        `env:"JWT_SECRET"`
	SessionSecret string        `env:"SESSION_SECRET"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,      default=24h"`

	DB    DBConfig
	Redis RedisConfig
}

type DBConfig struct {
	Driver string `env:"DB_DRIVER, default=sqlite"`
	DSN    string `env:"DB_DSN,    default=catalog.db"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Production reports whether the process runs with production hardening:
// signing secrets are mandatory and internal error details are never echoed.
func (c *Config) Production() bool {
	return c.Env == "production"
}
