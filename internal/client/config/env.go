package config

import "os"

const (
	EnvAPIURL   = "BOOKSHELF_API_URL"
	EnvDatabase = "BOOKSHELF_DB"
	EnvLogLevel = "BOOKSHELF_LOG_LEVEL"
)

var lookupEnv = os.LookupEnv

// parseEnv overlays Config with non-empty environment variables.
func parseEnv(cfg *Config) {
	set := func(key string, dst *string) {
		if v, ok := lookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvAPIURL, &cfg.APIBaseURL)
	set(EnvDatabase, &cfg.DatabasePath)
	set(EnvLogLevel, &cfg.LogLevel)
}
