// Package testutil provides helpers shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goaltrack/internal/db"
)

// NewDB opens a migrated SQLite database in a temporary directory.
// It is closed automatically when the test ends.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	conn := filepath.Join(t.TempDir(), "goaltrack.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	database, err := db.Init(ctx, "sqlite", conn)
	if err != nil {
		t.Fatalf("init test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(ctx, database.DB, "sqlite")
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return database
}
