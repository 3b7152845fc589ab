package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	pg := &DB{Dialect: DialectPostgres}
	assert.Equal(t,
		"SELECT * FROM transactions WHERE id = $1 AND session_id = $2",
		pg.Rebind("SELECT * FROM transactions WHERE id = ? AND session_id = ?"))

	lite := &DB{Dialect: DialectSQLite}
	assert.Equal(t, "SELECT 1 WHERE a = ?", lite.Rebind("SELECT 1 WHERE a = ?"))
}

func TestOpenUnsupportedClient(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	assert.ErrorContains(t, err, "unsupported database client")
}

func TestOpenAndMigrateSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledger.db")

	db, err := Open(context.Background(), "sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))
	// Applying twice is a no-op.
	require.NoError(t, Migrate(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count))
	assert.Zero(t, count)
}
