// Package config loads lessonhub settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/lessonhub/internal/llm"
	"github.com/abhisek/lessonhub/internal/logging"
)

// Backend selects where progress data is stored.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Config is the resolved process configuration.
type Config struct {
	// DBPath is the database or JSON file path. Empty means the default
	// location for the backend.
	DBPath   string
	Backend  Backend
	LogLevel string
	// TimeZone names the location streak days are counted in. Empty means
	// the system local zone.
	TimeZone string
	LLM      llm.Config
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Backend:  BackendSQLite,
		LogLevel: logging.DefaultLevel,
		LLM:      llm.DefaultConfig(),
	}
}

// Load reads an optional .env file from the working directory and then
// builds the configuration from the environment. Variables already set in
// the environment win over .env entries.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := FromEnv()
	return cfg, cfg.Validate()
}

// FromEnv builds the configuration from environment variables, falling back
// to defaults for unset values.
func FromEnv() Config {
	cfg := Default()

	if p := os.Getenv("LESSONHUB_DB"); p != "" {
		cfg.DBPath = p
	}
	if b := os.Getenv("LESSONHUB_BACKEND"); b != "" {
		cfg.Backend = Backend(b)
	}
	if l := os.Getenv("LESSONHUB_LOG_LEVEL"); l != "" {
		cfg.LogLevel = l
	}
	if tz := os.Getenv("LESSONHUB_TZ"); tz != "" {
		cfg.TimeZone = tz
	}

	cfg.LLM = llm.ConfigFromEnv()
	if os.Getenv("LESSONHUB_LLM_PROVIDER") == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg.LLM = discovered
		}
	}
	return cfg
}

// Validate checks backend, log level and time zone. LLM settings are
// checked only when a command needs a provider.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, file or memory)", c.Backend)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TimeZone.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
