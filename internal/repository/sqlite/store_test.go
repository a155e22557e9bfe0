package sqlite

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"tlstory/internal/domain"
	timelineRepo "tlstory/internal/domain/repositories/timeline"
	"tlstory/internal/domain/schema"
)

func newTestStore(t *testing.T) *timelineRepo.Store {
	t.Helper()
	store, err := NewStore(t.Context(), ":memory:", "test_", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustAssign(t *testing.T, table *schema.Table, values map[string]any) schema.Assignments {
	t.Helper()
	a, err := table.AssignmentsFromMap(values)
	require.NoError(t, err)
	return a
}

func TestEventRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	id, err := store.Events.CreateEvent(ctx, mustAssign(t, schema.Events, map[string]any{
		"headline":    "Moon landing",
		"start_year":  1969,
		"start_month": 7,
		"media_url":   "https://example.com/moon.jpg",
	}))
	require.NoError(t, err)
	require.Positive(t, id)

	event, err := store.Events.GetEvent(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Moon landing", event.Headline)
	require.Equal(t, int64(1969), *event.StartYear)
	require.Equal(t, int64(7), *event.StartMonth)
	require.Nil(t, event.StartDay)
	require.Equal(t, "https://example.com/moon.jpg", *event.MediaURL)
	require.NotNil(t, event.Autolink)
	require.True(t, *event.Autolink, "autolink defaults to true")
	require.True(t, event.IsActive)
	require.False(t, event.CreatedAt.IsZero())
}

func TestEventUpdateWritesOnlyAssignedColumns(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	id, err := store.Events.CreateEvent(ctx, mustAssign(t, schema.Events, map[string]any{
		"headline":   "Original",
		"text":       "keep me",
		"start_year": 2000,
	}))
	require.NoError(t, err)

	err = store.Events.UpdateEvent(ctx, id, mustAssign(t, schema.Events, map[string]any{
		"headline": "Renamed",
		"text":     nil,
	}))
	require.NoError(t, err)

	event, err := store.Events.GetEvent(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Renamed", event.Headline)
	require.Equal(t, "keep me", *event.Text)
}

func TestEventOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	for _, values := range []map[string]any{
		{"headline": "c", "start_year": 2000, "start_month": 5},
		{"headline": "a", "start_year": 1990},
		{"headline": "b2", "start_year": 2000, "sort_order": 2},
		{"headline": "b1", "start_year": 2000, "sort_order": 1},
	} {
		_, err := store.Events.CreateEvent(ctx, mustAssign(t, schema.Events, values))
		require.NoError(t, err)
	}

	events, err := store.Events.FetchEvents(ctx, false)
	require.NoError(t, err)

	var got []string
	for _, e := range events {
		got = append(got, e.Headline)
	}
	require.Equal(t, []string{"a", "b1", "b2", "c"}, got)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	softID, err := store.Eras.CreateEra(ctx, mustAssign(t, schema.Eras, map[string]any{
		"headline": "Soft", "start_year": 1900, "end_year": 1950,
	}))
	require.NoError(t, err)
	hardID, err := store.Eras.CreateEra(ctx, mustAssign(t, schema.Eras, map[string]any{
		"headline": "Hard", "start_year": 1950, "end_year": 2000,
	}))
	require.NoError(t, err)

	require.NoError(t, store.Eras.DeleteEra(ctx, softID, true))
	require.NoError(t, store.Eras.DeleteEra(ctx, hardID, false))

	active, err := store.Eras.FetchEras(ctx, true)
	require.NoError(t, err)
	require.Empty(t, active)

	all, err := store.Eras.FetchEras(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, softID, all[0].ID)
	require.False(t, all[0].IsActive)

	_, err = store.Eras.GetEra(ctx, hardID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, store.Eras.DeleteEra(ctx, hardID, false), domain.ErrNotFound)
}

func TestUpdateMissingIDIsNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	err := store.Events.UpdateEvent(ctx, 42, mustAssign(t, schema.Events, map[string]any{"headline": "x"}))
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = store.Events.UpdateEvent(ctx, 42, nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDuplicateUniqueIDIsConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	values := mustAssign(t, schema.Events, map[string]any{
		"headline": "One", "start_year": 2001, "unique_id": "evt-1",
	})
	_, err := store.Events.CreateEvent(ctx, values)
	require.NoError(t, err)

	_, err = store.Events.CreateEvent(ctx, values)
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, "evt-1", conflict.ResourceID)
}

func TestMalformedRow(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	id, err := store.Events.CreateEvent(ctx, mustAssign(t, schema.Events, map[string]any{
		"headline": "Broken", "start_year": 1999,
	}))
	require.NoError(t, err)

	repo := store.Events.(*SQLiteEventRepository)
	_, err = repo.table.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET start_month = 'abc' WHERE id = ?", repo.table.name), id)
	require.NoError(t, err)

	_, err = store.Events.FetchEvents(ctx, false)
	require.ErrorIs(t, err, domain.ErrMalformedRow)

	var malformed *domain.MalformedRowError
	require.True(t, errors.As(err, &malformed))
	require.Equal(t, id, malformed.RowID)
	require.Equal(t, "start_month", malformed.Field)
}

func TestConfigSingleton(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	cfg, err := store.Config.FetchConfig(ctx)
	require.NoError(t, err)
	require.Nil(t, cfg)

	require.ErrorIs(t, store.Config.UpdateConfig(ctx, nil), domain.ErrNotFound)

	defaults := mustAssign(t, schema.Config, map[string]any{
		"title_headline": "My Timeline",
		"scale":          "human",
	})
	created, err := store.Config.EnsureConfig(ctx, defaults)
	require.NoError(t, err)
	require.True(t, created)

	created, err = store.Config.EnsureConfig(ctx, defaults)
	require.NoError(t, err)
	require.False(t, created)

	require.NoError(t, store.Config.UpdateConfig(ctx, mustAssign(t, schema.Config, map[string]any{
		"title_text": "Subtitle",
	})))

	cfg, err = store.Config.FetchConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), cfg.ID)
	require.Equal(t, "My Timeline", *cfg.TitleHeadline)
	require.Equal(t, "Subtitle", *cfg.TitleText)
	require.Equal(t, "human", *cfg.Scale)
}
