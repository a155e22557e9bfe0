package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "HOST", "DATABASE_URL", "TABLE_PREFIX",
		"JSON_OUTPUT", "BACKUP_DIR", "BACKUP_KEEP", "BACKUP_INTERVAL",
		"STATIC_DIR", "CORS_ORIGINS", "LOG_LEVEL", "LOG_DIR", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Environment)
	require.Equal(t, "localhost:8000", cfg.Addr())
	require.Equal(t, filepath.Join("data", "timeline.db"), cfg.DatabaseURL)
	require.Equal(t, filepath.Join("data", "backups"), cfg.BackupDir)
	for _, p := range []string{cfg.DatabaseURL, cfg.BackupDir} {
		rel, err := filepath.Rel(cfg.StaticDir, p)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(rel, ".."), "%s is served from %s", p, cfg.StaticDir)
	}
	require.Equal(t, filepath.Join("static", "data", "tl-story.json"), cfg.JSONOutput)
	require.Equal(t, 10, cfg.BackupKeep)
	require.Zero(t, cfg.BackupInterval)
	require.Empty(t, cfg.TablePrefix)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.MetricsEnabled)
	require.Equal(t, []string{"*"}, cfg.CORSOriginList())
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric keep", "BACKUP_KEEP", "many"},
		{"zero keep", "BACKUP_KEEP", "0"},
		{"bad interval", "BACKUP_INTERVAL", "daily"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadBackupInterval(t *testing.T) {
	t.Setenv("BACKUP_INTERVAL", "6h")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 6*time.Hour, cfg.BackupInterval)
}

func TestGetTablePrefix(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		url      string
		override string
		want     string
	}{
		{"sqlite has no prefix", "prod", "data/timeline.db", "", ""},
		{"postgres dev", "dev", "postgres://localhost/tl", "", "dev_"},
		{"postgres prod", "prod", "postgres://localhost/tl", "", "prod_"},
		{"postgres test", "test", "postgresql://localhost/tl", "", "test_"},
		{"explicit override", "prod", "data/timeline.db", "demo_", "demo_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TABLE_PREFIX", tt.override)
			require.Equal(t, tt.want, getTablePrefix(tt.env, tt.url))
		})
	}
}

func TestCORSOriginList(t *testing.T) {
	cfg := &Config{CORSOrigins: "http://a.test, http://b.test,,"}
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOriginList())
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{
		DatabaseURL: filepath.Join(root, "db", "timeline.db"),
		JSONOutput:  filepath.Join(root, "out", "tl-story.json"),
		BackupDir:   filepath.Join(root, "backups"),
		StaticDir:   filepath.Join(root, "static"),
	}
	require.NoError(t, cfg.EnsureDirectories())
	for _, dir := range []string{"db", "out", "backups", "static"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLogLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLogLevel("nonsense"))
}

func TestSetupLogFileKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"server-2024-01-01T00-00-00.log", "server-2024-01-02T00-00-00.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	f, err := SetupLogFile(dir, 2)
	require.NoError(t, err)
	defer f.Close()

	files, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.NotContains(t, files, filepath.Join(dir, "server-2024-01-01T00-00-00.log"))
}
