// Package config loads runtime configuration for the bookshelf CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment: BOOKSHELF_API_URL, BOOKSHELF_DB, BOOKSHELF_LOG_LEVEL.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the library API
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "15s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000/api",
//	  "database_path": "library.db",
//	  "request_timeout": "15s",
//	  "log_level": "warn",
//	  "log_format": "text"
//	}
package config
