package database

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/minhvu-ng/studybot/internal/database/migrations"
)

// NewTestDB creates an in-memory database with migrations applied, for use
// in tests across packages.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Each sqlite connection gets its own in-memory database; pin the pool to
	// one connection so every query sees the migrated schema.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := migrations.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &DB{db}
}

// mustCreateConversation is a test helper that fails the test on error.
func mustCreateConversation(t *testing.T, d *DB, title string) *Conversation {
	t.Helper()
	c, err := d.CreateConversation(title)
	if err != nil {
		t.Fatalf("failed to create conversation %q: %v", title, err)
	}
	if c == nil {
		t.Fatal(fmt.Sprintf("conversation %q is nil", title))
	}
	return c
}
