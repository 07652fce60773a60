package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	testStore(t, func(t *testing.T) Store {
		j, _ := newTestSQLite(t)
		return j
	})
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE name IN ('trades','idx_trades_executed_at')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["trades"])
	assert.True(t, found["idx_trades_executed_at"])
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, path := newTestSQLite(t)

	want := fullTrade("T1", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, j.RecordTrade(ctx, want))
	require.NoError(t, j.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.GetTrade(ctx, "T1")
	require.NoError(t, err)
	assertSameTrade(t, want, got)
}

func TestSQLiteNullColumns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, path := newTestSQLite(t)
	require.NoError(t, j.RecordTrade(ctx, fullTrade("full", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, j.RecordTrade(ctx, trade0("bare")))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var nulls int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM trades
		WHERE r_multiple IS NULL AND executed_at IS NULL AND rules_followed IS NULL
		  AND confidence IS NULL AND risk_pct IS NULL`).Scan(&nulls)
	require.NoError(t, err)
	assert.Equal(t, 1, nulls)
}

func TestSQLiteInMemory(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(":memory:")
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	require.NoError(t, j.RecordTrade(ctx, trade0("mem")))
	all, err := j.ListTrades(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mem"}, ids(all))
}
