package sqlite

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/slidemerge/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store := setupTestStore(t)

	assert.FileExists(t, store.Path())
	assert.Contains(t, store.Path(), "history.db")
}

func TestNewStore_Reopen(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.RunStore().Save(context.Background(), &domain.MergeRun{ID: "a", Input: "deck.md", StartedAt: time.Now()}))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	run, err := second.RunStore().Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "deck.md", run.Input)
}

func TestStore_MigrateSkipsAppliedVersions(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.migrate(migrations.FS))

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_MigrateIgnoresUnversionedFiles(t *testing.T) {
	store := setupTestStore(t)

	fsys := fstest.MapFS{
		"notes.up.sql":   {Data: []byte("THIS IS NOT SQL")},
		"README.md":      {Data: []byte("ignored")},
		"001_x.down.sql": {Data: []byte("DROP TABLE merge_runs;")},
	}
	assert.NoError(t, store.migrate(fsys))
}

func TestRunStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	runs := setupTestStore(t).RunStore()
	started := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)

	run := &domain.MergeRun{
		ID:    "run-1",
		Input: "/decks/week1.md",
		Outputs: map[domain.Variant]string{
			domain.VariantSite:     "/decks/site_week1.md",
			domain.VariantDocument: "/decks/document_week1.md",
			domain.VariantSlide:    "/decks/slide_week1.md",
		},
		Excluded:  7,
		Passes:    2,
		StartedAt: started,
		Duration:  1500 * time.Microsecond,
	}
	require.NoError(t, runs.Save(ctx, run))

	got, err := runs.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Input, got.Input)
	assert.Equal(t, run.Outputs, got.Outputs)
	assert.Equal(t, 7, got.Excluded)
	assert.Equal(t, 2, got.Passes)
	assert.False(t, got.Skipped)
	assert.True(t, got.Succeeded())
	assert.True(t, started.Equal(got.StartedAt))
	assert.Equal(t, run.Duration, got.Duration)
}

func TestRunStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	runs := setupTestStore(t).RunStore()

	require.NoError(t, runs.Save(ctx, &domain.MergeRun{ID: "r", Input: "a.md", StartedAt: time.Now()}))
	require.NoError(t, runs.Save(ctx, &domain.MergeRun{ID: "r", Input: "a.md", Skipped: true, Error: "boom", StartedAt: time.Now()}))

	got, err := runs.Get(ctx, "r")
	require.NoError(t, err)
	assert.True(t, got.Skipped)
	assert.Equal(t, "boom", got.Error)
	assert.Nil(t, got.Outputs)
}

func TestRunStore_Get_NotFound(t *testing.T) {
	_, err := setupTestStore(t).RunStore().Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_Save_Invalid(t *testing.T) {
	err := setupTestStore(t).RunStore().Save(context.Background(), &domain.MergeRun{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRunStore_ListAndClear(t *testing.T) {
	ctx := context.Background()
	runs := setupTestStore(t).RunStore()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, runs.Save(ctx, &domain.MergeRun{ID: id, Input: id + ".md", StartedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	all, err := runs.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].ID, all[1].ID, all[2].ID})

	two, err := runs.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)

	require.NoError(t, runs.Clear(ctx))
	empty, err := runs.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
