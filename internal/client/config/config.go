package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the bookshelf CLI.
//
// Fields:
//   - APIBaseURL: root of the library REST API, e.g. http://127.0.0.1:8000/api.
//   - DatabasePath: SQLite file holding the persisted session token.
//   - RequestTimeout: per-request HTTP timeout; zero disables it.
//   - LogLevel, LogFormat: passed to logging.New.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.DatabasePath = "library.db"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return errors.New("config: api base url is empty")
	}
	if c.DatabasePath == "" {
		return errors.New("config: database path is empty")
	}
	if c.RequestTimeout < 0 {
		return errors.New("config: request timeout is negative")
	}
	return nil
}
