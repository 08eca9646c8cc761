package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUp_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")

	require.NoError(t, Up(DialectSQLite, path, nil))
	// Second run is a no-op.
	require.NoError(t, Up(DialectSQLite, path, nil))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "projects", "courses", "enrollments"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestUp_UnknownDialect(t *testing.T) {
	err := Up("mysql", "whatever", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported migration dialect")
}
