package stubapi

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the stub server settings.
type Config struct {
	Addr     string        `env:"ROOST_STUB_ADDR" envDefault:"127.0.0.1:8080"`
	Secret   string        `env:"ROOST_STUB_SECRET" envDefault:"roost-dev-secret"`
	TokenTTL time.Duration `env:"ROOST_STUB_TOKEN_TTL" envDefault:"72h"`
	// AccessLog enables the fiber request logger.
	AccessLog bool `env:"ROOST_STUB_ACCESS_LOG" envDefault:"true"`
	// Now is the clock for token and review timestamps; nil uses time.Now.
	Now func() time.Time
}

// LoadConfig reads an optional .env file and ROOST_STUB_* variables.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
