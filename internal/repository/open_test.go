package repository

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPostgresURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"postgres://user@localhost/db", true},
		{"postgresql://user@localhost/db", true},
		{"data/timeline.db", false},
		{":memory:", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			require.Equal(t, tt.want, IsPostgresURL(tt.url))
		})
	}
}

func TestOpenSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "timeline.db")
	store, err := Open(t.Context(), path, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer store.Close()

	require.Equal(t, "sqlite", store.Backend)
	require.FileExists(t, path)
}
