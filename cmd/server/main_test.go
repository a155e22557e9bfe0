package main

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setServerEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	env := map[string]string{
		"ENVIRONMENT":     "test",
		"HOST":            "127.0.0.1",
		"PORT":            "0",
		"DATABASE_URL":    filepath.Join(dir, "data", "timeline.db"),
		"TABLE_PREFIX":    "",
		"JSON_OUTPUT":     filepath.Join(dir, "static", "data", "tl-story.json"),
		"BACKUP_DIR":      filepath.Join(dir, "data", "backups"),
		"BACKUP_KEEP":     "2",
		"BACKUP_INTERVAL": "",
		"STATIC_DIR":      filepath.Join(dir, "static"),
		"LOG_LEVEL":       "error",
		"LOG_DIR":         "",
		"METRICS_ENABLED": "false",
		"CORS_ORIGINS":    "*",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
	return dir
}

func TestRunReturnsConfigError(t *testing.T) {
	setServerEnv(t)
	t.Setenv("BACKUP_KEEP", "0")

	err := run(t.Context())
	require.ErrorContains(t, err, "load configuration")
}

func TestRunReturnsListenError(t *testing.T) {
	dir := setServerEnv(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	t.Setenv("PORT", port)

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	err = run(ctx)
	require.ErrorContains(t, err, "serve")
	require.NoError(t, ctx.Err(), "run returned because the listener failed")

	// Startup got as far as opening the database before the listener failed.
	_, statErr := os.Stat(filepath.Join(dir, "data", "timeline.db"))
	require.NoError(t, statErr)
}
