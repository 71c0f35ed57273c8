package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatabaseURL           string
	HTTPPort              string
	ReportingCurrency     string
	SnapshotInterval      time.Duration
	SnapshotOwners        []string
	QuoteCacheTTL         time.Duration
	AdminAPIKey           string
	SheetsSpreadsheetID   string
	SheetsCredentialsJSON string
	XLSXPath              string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DatabaseURL:           envOrDefaultWarn("DATABASE_URL", ""),
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		ReportingCurrency:     envOrDefault("REPORTING_CURRENCY", "USD"),
		SnapshotInterval:      envOrDefaultDuration("SNAPSHOT_INTERVAL", 24*time.Hour),
		SnapshotOwners:        envOrDefaultList("SNAPSHOT_OWNERS", nil),
		QuoteCacheTTL:         envOrDefaultDuration("QUOTE_CACHE_TTL", 15*time.Minute),
		AdminAPIKey:           envOrDefault("ADMIN_API_KEY", ""),
		SheetsSpreadsheetID:   envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentialsJSON: envOrDefault("SHEETS_CREDENTIALS_JSON", "credentials.json"),
		XLSXPath:              envOrDefault("XLSX_PATH", "statements.xlsx"),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func envOrDefaultList(key string, defaultVal []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultVal
}
