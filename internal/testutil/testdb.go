package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/pinboard/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a fresh board database in memory, migrated and empty.
// Each call gets its own database; it is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
