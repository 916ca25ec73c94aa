package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	store, err := NewStore(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, store)

	return store, path
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, path := setupTestStore(t)
	defer store.Close()

	assert.Equal(t, path, store.Name())
	assert.NotEmpty(t, store.RunID())
	assert.FileExists(t, path)
}

func TestStore_AppendKeepsOrder(t *testing.T) {
	store, _ := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	records := []domain.TweetRecord{
		{URL: "https://twitter.com/ann/status/1", Handle: "ann", CreatedAt: "T1", Text: "first"},
		{URL: "https://twitter.com/bob/status/2", Handle: "bob", CreatedAt: "T2", Text: "second"},
		{URL: "https://twitter.com/ann/status/1", Handle: "ann", CreatedAt: "T1", Text: "first"},
	}
	for _, r := range records {
		require.NoError(t, store.Append(ctx, r))
	}

	rows, err := store.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		records[0].Row(),
		records[1].Row(),
		records[2].Row(),
	}, rows)
}

func TestStore_ReopenKeepsRowsAndStartsNewRun(t *testing.T) {
	ctx := context.Background()
	store, path := setupTestStore(t)
	firstRun := store.RunID()
	require.NoError(t, store.Append(ctx, domain.TweetRecord{URL: "u1", Handle: "a", CreatedAt: "c", Text: "t"}))
	require.NoError(t, store.Close())

	sink, err := NewOpener(path).Open(ctx)
	require.NoError(t, err)
	reopened := sink.(*Store)
	defer reopened.Close()

	assert.NotEqual(t, firstRun, reopened.RunID())
	require.NoError(t, reopened.Append(ctx, domain.TweetRecord{URL: "u2", Handle: "b", CreatedAt: "c", Text: "t"}))

	rows, err := reopened.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "u1", rows[0][0])
	assert.Equal(t, "u2", rows[1][0])

	var runs int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&runs))
	assert.Equal(t, 2, runs)

	var versions int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)
}

func TestStore_CloseEndsRun(t *testing.T) {
	ctx := context.Background()
	store, path := setupTestStore(t)
	runID := store.RunID()
	require.NoError(t, store.Close())

	reopened, err := NewStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	var ended sql.NullString
	require.NoError(t, reopened.db.QueryRow("SELECT ended_at FROM runs WHERE id = ?", runID).Scan(&ended))
	assert.True(t, ended.Valid)
}

func TestStore_AppendAfterClose(t *testing.T) {
	store, _ := setupTestStore(t)
	require.NoError(t, store.Close())

	err := store.Append(context.Background(), domain.TweetRecord{URL: "u"})

	assert.Error(t, err)
}
