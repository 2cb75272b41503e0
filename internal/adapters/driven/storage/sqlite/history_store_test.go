package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func sampleRecord(id string, started time.Time) domain.ReleaseRecord {
	return domain.ReleaseRecord{
		ID:           id,
		Project:      "widget",
		Version:      "1.2.3",
		NextSnapshot: "1.2.4-SNAPSHOT",
		RC:           0,
		RCTag:        "widget-1.2.3-rc0",
		Commit:       "0123456789abcdef0123456789abcdef01234567",
		Outcome:      domain.OutcomeDryRun,
		StartedAt:    started,
		FinishedAt:   started.Add(30 * time.Second),
	}
}

func TestHistoryStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()

	started := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, history.Save(ctx, sampleRecord("run-1", started)))

	got, err := history.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "widget", got.Project)
	assert.Equal(t, "1.2.3", got.Version)
	assert.Equal(t, "1.2.4-SNAPSHOT", got.NextSnapshot)
	assert.Equal(t, "widget-1.2.3-rc0", got.RCTag)
	assert.Equal(t, domain.OutcomeDryRun, got.Outcome)
	assert.False(t, got.Published)
	assert.True(t, got.StartedAt.Equal(started))
}

func TestHistoryStore_Save_Upsert(t *testing.T) {
	store := newTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()

	rec := sampleRecord("run-1", time.Now().UTC())
	require.NoError(t, history.Save(ctx, rec))

	rec.Outcome = domain.OutcomePublished
	rec.Published = true
	require.NoError(t, history.Save(ctx, rec))

	got, err := history.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePublished, got.Outcome)
	assert.True(t, got.Published)

	records, err := history.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestHistoryStore_Save_EmptyID(t *testing.T) {
	store := newTestStore(t)

	err := store.HistoryStore().Save(context.Background(), domain.ReleaseRecord{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.HistoryStore().Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_List_NewestFirstWithLimit(t *testing.T) {
	store := newTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, history.Save(ctx, sampleRecord(id, base.Add(time.Duration(i)*time.Hour))))
	}

	records, err := history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "old", records[2].ID)

	limited, err := history.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "new", limited[0].ID)
}

func TestHistoryStore_RecordsFailure(t *testing.T) {
	store := newTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()

	rec := sampleRecord("run-fail", time.Now().UTC())
	rec.Outcome = domain.OutcomeFailed
	rec.Failure = "external tool failed: git push"
	require.NoError(t, history.Save(ctx, rec))

	got, err := history.Get(ctx, "run-fail")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFailed, got.Outcome)
	assert.Contains(t, got.Failure, "git push")
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Re-opening the same directory re-runs migration discovery.
	second, err := NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}
