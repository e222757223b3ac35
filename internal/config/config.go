package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Token store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	APIURL      string        `env:"JOBTRACK_API_URL" default:"http://localhost:8000"`
	TokenStore  string        `env:"JOBTRACK_TOKEN_STORE" default:"file"`
	TokenPath   string        `env:"JOBTRACK_TOKEN_PATH"`
	HTTPTimeout time.Duration `env:"JOBTRACK_HTTP_TIMEOUT" default:"0s"`
	RateLimit   float64       `env:"JOBTRACK_RATE_LIMIT" default:"0"`
	RateBurst   int           `env:"JOBTRACK_RATE_BURST" default:"1"`
	LogLevel    string        `env:"LOG_LEVEL" default:"warn"`
	LogFormat   string        `env:"LOG_FORMAT" default:"text"`

	// Password is read by login and signup when no -password flag is given.
	Password string `env:"JOBTRACK_PASSWORD"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	if cfg.TokenPath == "" && cfg.TokenStore != StoreMemory {
		path, err := defaultTokenPath(cfg.TokenStore)
		if err != nil {
			return nil, err
		}
		cfg.TokenPath = path
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("JOBTRACK_API_URL must be an absolute URL, got %q", cfg.APIURL)
	}

	switch cfg.TokenStore {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("JOBTRACK_TOKEN_STORE must be one of file, sqlite, memory, got %q", cfg.TokenStore)
	}

	if cfg.HTTPTimeout < 0 {
		return errors.New("JOBTRACK_HTTP_TIMEOUT must not be negative")
	}
	if cfg.RateLimit < 0 {
		return errors.New("JOBTRACK_RATE_LIMIT must not be negative")
	}
	if cfg.RateBurst < 1 {
		return errors.New("JOBTRACK_RATE_BURST must be at least 1")
	}

	return nil
}

func defaultTokenPath(store string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}

	name := "token.json"
	if store == StoreSQLite {
		name = "session.db"
	}
	return filepath.Join(dir, "jobtrack", name), nil
}
