package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the calendar.
type Config struct {
	SQLiteDSN     string
	LogLevel      slog.Level
	QueryCacheTTL time.Duration
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for every field, so an empty environment is
// valid. Invalid values are reported together rather than one at a time.
func Load() (Config, error) {
	cfg := Config{
		SQLiteDSN:     ":memory:",
		LogLevel:      slog.LevelInfo,
		QueryCacheTTL: 30 * time.Second,
	}

	invalid := make([]string, 0, 2)

	if dsn := strings.TrimSpace(os.Getenv("CALENDAR_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if levelValue := strings.TrimSpace(os.Getenv("CALENDAR_LOG_LEVEL")); levelValue != "" {
		level, ok := parseLevel(levelValue)
		if !ok {
			invalid = append(invalid, "CALENDAR_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("CALENDAR_QUERY_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "CALENDAR_QUERY_CACHE_TTL")
		} else {
			cfg.QueryCacheTTL = ttl
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func parseLevel(value string) (slog.Level, bool) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}
