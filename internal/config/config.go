package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Host        string
	Environment string
	CORSOrigins string
	// DatabaseURL is a SQLite file path, or a postgres:// URL for PostgreSQL
	DatabaseURL string
	TablePrefix string
	// Output locations
	JSONOutput string
	BackupDir  string
	BackupKeep int
	// BackupInterval enables scheduled backups when non-zero
	BackupInterval time.Duration
	StaticDir      string
	// Logging
	LogLevel string
	LogDir   string
	// Metrics
	MetricsEnabled bool
}

func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")
	databaseURL := getEnv("DATABASE_URL", filepath.Join("data", "timeline.db"))

	backupKeep, err := strconv.Atoi(getEnv("BACKUP_KEEP", "10"))
	if err != nil || backupKeep < 1 {
		return nil, fmt.Errorf("BACKUP_KEEP must be a positive integer, got %q", os.Getenv("BACKUP_KEEP"))
	}

	var backupInterval time.Duration
	if raw := getEnv("BACKUP_INTERVAL", ""); raw != "" {
		backupInterval, err = time.ParseDuration(raw)
		if err != nil || backupInterval < 0 {
			return nil, fmt.Errorf("BACKUP_INTERVAL must be a duration such as 24h, got %q", raw)
		}
	}

	return &Config{
		Port:           getEnv("PORT", "8000"),
		Host:           getEnv("HOST", "localhost"),
		Environment:    env,
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		DatabaseURL:    databaseURL,
		TablePrefix:    getTablePrefix(env, databaseURL),
		JSONOutput:     getEnv("JSON_OUTPUT", filepath.Join("static", "data", "tl-story.json")),
		BackupDir:      getEnv("BACKUP_DIR", filepath.Join("data", "backups")),
		BackupKeep:     backupKeep,
		BackupInterval: backupInterval,
		StaticDir:      getEnv("STATIC_DIR", "static"),
		LogLevel:       getEnv("LOG_LEVEL", getDefaultLogLevel(env)),
		LogDir:         getEnv("LOG_DIR", ""),
		MetricsEnabled: getEnv("METRICS_ENABLED", "true") == "true",
	}, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// CORSOriginList splits CORS_ORIGINS on commas
func (c *Config) CORSOriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// EnsureDirectories creates the data, backup and static directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.JSONOutput), c.BackupDir, c.StaticDir}
	if !strings.HasPrefix(c.DatabaseURL, "postgres") && c.DatabaseURL != ":memory:" {
		dirs = append(dirs, filepath.Dir(c.DatabaseURL))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// getDefaultLogLevel returns the default log level based on environment
func getDefaultLogLevel(env string) string {
	if env == "dev" {
		return "debug"
	}
	return "info"
}

// getTablePrefix returns the table prefix based on environment.
// SQLite files are already per-environment, so they get no prefix unless set.
func getTablePrefix(env, databaseURL string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}
	if !strings.HasPrefix(databaseURL, "postgres") {
		return ""
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
