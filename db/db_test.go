// SPDX-License-Identifier: GPL-3.0-only

package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "jobs.db?_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate", SQLiteDSN("jobs.db"))
	assert.Equal(t, "file:jobs.db?cache=shared&_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate", SQLiteDSN("file:jobs.db?cache=shared"))
}

func TestCheckSchema(t *testing.T) {
	conn, err := OpenDialector(sqlite.Open(SQLiteDSN(filepath.Join(t.TempDir(), "schema.db"))))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(conn) })

	err = CheckSchema(conn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--migrate-db")
	assert.Contains(t, err.Error(), `"api_keys"`)

	require.NoError(t, Migrate(conn))
	assert.NoError(t, CheckSchema(conn))
}
