package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("creates directory and database", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "subdir", "history.db")

		ctx := context.Background()
		store, err := NewStore(ctx, dbPath)
		require.NoError(t, err)
		defer store.Close()

		_, err = os.Stat(dbPath)
		assert.NoError(t, err)

		var result int
		err = store.QueryRowContext(ctx, "SELECT 1").Scan(&result)
		assert.NoError(t, err)
		assert.Equal(t, 1, result)
	})

	t.Run("sets WAL mode", func(t *testing.T) {
		ctx := context.Background()
		store, err := NewStore(ctx, filepath.Join(t.TempDir(), "history.db"))
		require.NoError(t, err)
		defer store.Close()

		var mode string
		err = store.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode)
		assert.NoError(t, err)
		assert.Equal(t, "wal", mode)
	})
}

func TestStore_Migrate(t *testing.T) {
	t.Run("creates reblogs table", func(t *testing.T) {
		store := NewTestStore(t)

		var tableName string
		err := store.QueryRowContext(context.Background(),
			"SELECT name FROM sqlite_master WHERE type='table' AND name='reblogs'").Scan(&tableName)
		assert.NoError(t, err)
		assert.Equal(t, "reblogs", tableName)
	})

	t.Run("is idempotent", func(t *testing.T) {
		ctx := context.Background()
		store, err := NewStore(ctx, filepath.Join(t.TempDir(), "history.db"))
		require.NoError(t, err)
		defer store.Close()

		require.NoError(t, store.Migrate(ctx))
		require.NoError(t, store.Migrate(ctx))

		var applied int
		err = store.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied)
		require.NoError(t, err)
		assert.Equal(t, 1, applied)

		count, err := store.CountReblogs(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(ctx, dbPath)
	require.NoError(t, err)
	_, err = store.CreateReblog(ctx, CreateReblogParams{
		SourceBlog:      "foo",
		SourcePostID:    "42",
		DestinationBlog: "myblog",
		PublishOn:       "2023-01-01 09:30:00 GMT",
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.CountReblogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestQueries_Reblogs(t *testing.T) {
	ctx := context.Background()
	store := NewTestStore(t)

	created, err := store.CreateReblog(ctx, CreateReblogParams{
		SourceBlog:      "foo",
		SourcePostID:    "42",
		DestinationBlog: "myblog",
		ReblogID:        "900",
		PublishOn:       "2023-01-01 09:30:00 GMT",
		State:           "queued",
		DisplayText:     "Queued for Jan 1, 2023.",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "foo", created.SourceBlog)
	assert.Equal(t, "900", created.ReblogID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = store.CreateReblog(ctx, CreateReblogParams{
		SourceBlog:      "bar",
		SourcePostID:    "7",
		DestinationBlog: "myblog",
		PublishOn:       "2024-05-05 00:00:00 GMT",
	})
	require.NoError(t, err)

	t.Run("list newest first", func(t *testing.T) {
		reblogs, err := store.ListReblogs(ctx, 10)
		require.NoError(t, err)
		require.Len(t, reblogs, 2)
		assert.Equal(t, "bar", reblogs[0].SourceBlog)
		assert.Equal(t, "foo", reblogs[1].SourceBlog)
	})

	t.Run("list honors limit", func(t *testing.T) {
		reblogs, err := store.ListReblogs(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, reblogs, 1)
	})

	t.Run("count", func(t *testing.T) {
		count, err := store.CountReblogs(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("count by source", func(t *testing.T) {
		count, err := store.CountReblogsBySource(ctx, CountReblogsBySourceParams{SourceBlog: "foo", SourcePostID: "42"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = store.CountReblogsBySource(ctx, CountReblogsBySourceParams{SourceBlog: "foo", SourcePostID: "43"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestUpSection(t *testing.T) {
	t.Run("extracts up portion", func(t *testing.T) {
		content := `-- +migrate Up
CREATE TABLE test (id INTEGER);

-- +migrate Down
DROP TABLE test;
`
		assert.Equal(t, "CREATE TABLE test (id INTEGER);", upSection(content))
	})

	t.Run("handles no markers", func(t *testing.T) {
		content := "CREATE TABLE test (id INTEGER);\n"
		assert.Equal(t, "CREATE TABLE test (id INTEGER);", upSection(content))
	})
}

// NewTestStore provides a migrated history database for tests.
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
