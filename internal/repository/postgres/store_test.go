package postgres

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tlstory/internal/domain"
	"tlstory/internal/domain/schema"
	"tlstory/internal/repository/sqlgen"
)

func TestSchemaStatementsUsePrefix(t *testing.T) {
	stmts := schemaStatements(sqlgen.NewTableNames("test_"))
	require.Len(t, stmts, 5)
	require.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS test_timeline_config")
	require.Contains(t, stmts[1], "CREATE TABLE IF NOT EXISTS test_timeline_events")
	require.Contains(t, stmts[2], "CREATE TABLE IF NOT EXISTS test_timeline_eras")

	// every schema column has a matching DDL column
	for i, table := range []*schema.Table{schema.Config, schema.Events, schema.Eras} {
		for _, col := range table.Columns() {
			require.True(t, strings.Contains(stmts[i], "\n\t\t\t"+col+" "), "%s missing column %s", table.Name, col)
		}
	}
}

// TestStoreIntegration runs against a live database when TEST_DATABASE_URL is set.
func TestStoreIntegration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := t.Context()

	store, err := NewStore(ctx, url, "itest_", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	repo := store.Events.(*PostgresEventRepository)
	_, err = repo.table.pool.Exec(ctx, "TRUNCATE itest_timeline_events, itest_timeline_eras, itest_timeline_config RESTART IDENTITY")
	require.NoError(t, err)

	values, err := schema.Events.AssignmentsFromMap(map[string]any{
		"headline":   "Moon landing",
		"start_year": 1969,
		"unique_id":  "apollo-11",
	})
	require.NoError(t, err)

	id, err := store.Events.CreateEvent(ctx, values)
	require.NoError(t, err)

	_, err = store.Events.CreateEvent(ctx, values)
	require.ErrorIs(t, err, domain.ErrConflict)

	event, err := store.Events.GetEvent(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Moon landing", event.Headline)
	require.True(t, *event.Autolink)

	require.NoError(t, store.Events.DeleteEvent(ctx, id, true))
	active, err := store.Events.FetchEvents(ctx, true)
	require.NoError(t, err)
	require.Empty(t, active)

	created, err := store.Config.EnsureConfig(ctx, nil)
	require.NoError(t, err)
	require.True(t, created)
	cfg, err := store.Config.FetchConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), cfg.ID)
}
