package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		for _, key := range []string{
			"CALENDAR_SQLITE_DSN",
			"CALENDAR_LOG_LEVEL",
			"CALENDAR_QUERY_CACHE_TTL",
		} {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.SQLiteDSN != ":memory:" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.LogLevel != slog.LevelInfo {
			t.Fatalf("unexpected default log level: %v", cfg.LogLevel)
		}
		if cfg.QueryCacheTTL != 30*time.Second {
			t.Fatalf("unexpected default cache TTL: %v", cfg.QueryCacheTTL)
		}
	})

	t.Run("honors overrides", func(t *testing.T) {
		t.Setenv("CALENDAR_SQLITE_DSN", "file:calendar.db")
		t.Setenv("CALENDAR_LOG_LEVEL", "debug")
		t.Setenv("CALENDAR_QUERY_CACHE_TTL", "2m")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.SQLiteDSN != "file:calendar.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.LogLevel != slog.LevelDebug {
			t.Fatalf("unexpected log level: %v", cfg.LogLevel)
		}
		if cfg.QueryCacheTTL != 2*time.Minute {
			t.Fatalf("unexpected cache TTL: %v", cfg.QueryCacheTTL)
		}
	})

	t.Run("reports every invalid value", func(t *testing.T) {
		t.Setenv("CALENDAR_LOG_LEVEL", "verbose")
		t.Setenv("CALENDAR_QUERY_CACHE_TTL", "-5s")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error for invalid values")
		}
		for _, key := range []string{"CALENDAR_LOG_LEVEL", "CALENDAR_QUERY_CACHE_TTL"} {
			if !strings.Contains(err.Error(), key) {
				t.Fatalf("error %q does not name %s", err.Error(), key)
			}
		}
	})
}
