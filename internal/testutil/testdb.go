package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/sitedesk/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory database that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// CountProjectRows counts the rows of table that belong to projectID, or
// every row of projects when table is "projects".
func CountProjectRows(t *testing.T, database *sql.DB, table, projectID string) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + table + " WHERE project_id = ?"
	args := []any{projectID}
	if table == "projects" {
		query, args = "SELECT COUNT(*) FROM projects", nil
	}
	var n int
	require.NoError(t, database.QueryRow(query, args...).Scan(&n))
	return n
}
