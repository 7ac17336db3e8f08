package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/roost/internal/domain"
)

// Config captures everything roost reads at startup.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	TokenPath   string
	LogPath     string
	DefaultCity string
	PollEvery   time.Duration
}

const (
	defaultConfigPath = "~/.config/roost/config.toml"
	defaultTokenPath  = "~/.config/roost/token.toml"
	defaultLogPath    = "~/.local/state/roost/roost.log"
	defaultBaseURL    = "https://14.design.htmlacademy.pro/six-cities"
	defaultTimeout    = 5 * time.Second
	defaultPollEvery  = 30 * time.Second
	dotEnvFile        = ".env"
)

type fileConfig struct {
	BaseURL     string `toml:"base_url"`
	Timeout     string `toml:"timeout"`
	TokenPath   string `toml:"token_path"`
	LogPath     string `toml:"log_path"`
	DefaultCity string `toml:"default_city"`
	PollSeconds int    `toml:"poll_seconds"`
}

type envConfig struct {
	BaseURL     string        `env:"ROOST_BASE_URL"`
	Timeout     time.Duration `env:"ROOST_TIMEOUT"`
	TokenPath   string        `env:"ROOST_TOKEN_PATH"`
	LogPath     string        `env:"ROOST_LOG_PATH"`
	DefaultCity string        `env:"ROOST_DEFAULT_CITY"`
	PollSeconds int           `env:"ROOST_POLL_SECONDS"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BaseURL:     defaultBaseURL,
		Timeout:     defaultTimeout,
		TokenPath:   mustExpand(defaultTokenPath),
		LogPath:     mustExpand(defaultLogPath),
		DefaultCity: domain.DefaultCity,
		PollEvery:   defaultPollEvery,
	}
}

// Load reads the TOML config at path (or the default location), then applies
// a .env file from the working directory and ROOST_* environment variables.
// A missing config file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyFile(raw); err != nil {
		return Config{}, err
	}

	if err := loadDotEnv(dotEnvFile); err != nil {
		return Config{}, err
	}
	var overrides envConfig
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyEnv(overrides)

	return cfg, cfg.validate()
}

func readFile(path string) (fileConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fileConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return raw, nil
}

func (c *Config) applyFile(raw fileConfig) error {
	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: timeout: %w", err)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(raw.TokenPath); v != "" {
		c.TokenPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		c.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.DefaultCity); v != "" {
		c.DefaultCity = v
	}
	if raw.PollSeconds > 0 {
		c.PollEvery = time.Duration(raw.PollSeconds) * time.Second
	}
	return nil
}

func (c *Config) applyEnv(e envConfig) {
	if v := strings.TrimSpace(e.BaseURL); v != "" {
		c.BaseURL = v
	}
	if e.Timeout > 0 {
		c.Timeout = e.Timeout
	}
	if v := strings.TrimSpace(e.TokenPath); v != "" {
		c.TokenPath = mustExpand(v)
	}
	if v := strings.TrimSpace(e.LogPath); v != "" {
		c.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(e.DefaultCity); v != "" {
		c.DefaultCity = v
	}
	if e.PollSeconds > 0 {
		c.PollEvery = time.Duration(e.PollSeconds) * time.Second
	}
}

func (c *Config) validate() error {
	city, ok := domain.FindCity(c.DefaultCity)
	if !ok {
		return fmt.Errorf("unknown default city %q", c.DefaultCity)
	}
	c.DefaultCity = city.Name
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
