package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"tlstory/internal/config"
	timelineSvc "tlstory/internal/service/timeline"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DatabaseURL: ":memory:",
		JSONOutput:  filepath.Join(dir, "data", "tl-story.json"),
		BackupDir:   filepath.Join(dir, "data", "backups"),
		BackupKeep:  2,
	}

	var out bytes.Buffer
	a, err := newApp(t.Context(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, &out
}

// runCLI parses args against the real command tree and runs them on a.
func runCLI(t *testing.T, a *app, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("tlstory"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	kctx.BindTo(t.Context(), (*context.Context)(nil))
	return kctx.Run(a)
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const testSeed = `
config:
  title_headline: Computing
events:
  - headline: ENIAC
    start_year: 1945
    start_month: 12
    start_day: 10
  - headline: Transistor
    start_year: 1947
    event_group: hardware
eras:
  - headline: Vacuum tubes
    start_year: 1940
    end_year: 1956
`

func TestSeedAndList(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, runCLI(t, a, "seed", writeSeed(t, testSeed)))
	require.Contains(t, out.String(), "loaded 2 events, 1 eras (config updated: true)")

	out.Reset()
	require.NoError(t, runCLI(t, a, "events"))
	listing := out.String()
	require.Contains(t, listing, "ENIAC")
	require.Contains(t, listing, "1945-12-10")
	require.Contains(t, listing, "hardware")
	require.Less(t, strings.Index(listing, "ENIAC"), strings.Index(listing, "Transistor"))

	out.Reset()
	require.NoError(t, runCLI(t, a, "eras", "--all"))
	require.Contains(t, out.String(), "Vacuum tubes")
	require.Contains(t, out.String(), "1956")

	out.Reset()
	require.NoError(t, runCLI(t, a, "seed", "--replace", writeSeed(t, "events:\n  - headline: Only\n    start_year: 2000\n")))
	require.Contains(t, out.String(), "removed 2 events, 1 eras")
}

func TestGenerateAndExport(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, runCLI(t, a, "seed", writeSeed(t, testSeed)))

	out.Reset()
	require.NoError(t, runCLI(t, a, "generate"))
	require.Contains(t, out.String(), "wrote "+a.cfg.JSONOutput+" (2 events, 1 eras)")

	onDisk, err := os.ReadFile(a.cfg.JSONOutput)
	require.NoError(t, err)

	custom := filepath.Join(t.TempDir(), "custom.json")
	out.Reset()
	require.NoError(t, runCLI(t, a, "generate", "--out", custom))
	require.FileExists(t, custom)

	out.Reset()
	require.NoError(t, runCLI(t, a, "export"))
	require.Equal(t, string(onDisk), out.String())

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Equal(t, map[string]any{"text": map[string]any{"headline": "Computing", "text": timelineSvc.DefaultTitleText}}, doc["title"])
}

func TestBackupCommand(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, runCLI(t, a, "backup"))
	require.True(t, strings.HasPrefix(out.String(), "wrote "+a.cfg.BackupDir))
}

func TestSeedRejectsInvalidRows(t *testing.T) {
	a, _ := newTestApp(t)

	err := runCLI(t, a, "seed", writeSeed(t, "events:\n  - start_year: 1\n"))
	require.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	year, month, day, zero := int64(1969), int64(7), int64(20), int64(0)

	tests := []struct {
		name             string
		year, month, day *int64
		want             string
	}{
		{name: "no year", want: "-"},
		{name: "year only", year: &year, want: "1969"},
		{name: "zero month", year: &year, month: &zero, day: &day, want: "1969"},
		{name: "year and month", year: &year, month: &month, want: "1969-07"},
		{name: "full", year: &year, month: &month, day: &day, want: "1969-07-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, formatDate(tt.year, tt.month, tt.day))
		})
	}
}

func TestRenderTableEmpty(t *testing.T) {
	require.Empty(t, renderTable(nil, nil, nil))
	got := renderTable([]string{"ID", "Headline"}, [][]string{{"1"}}, []columnAlignment{alignRight})
	require.Contains(t, got, "Headline")
	require.Contains(t, got, "1")
}
