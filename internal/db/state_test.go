package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := ApplyMigrations(database); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return database
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()
	database := newTestDB(t)

	if err := ApplyMigrations(database); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}
	var count int
	if err := database.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != len(migrations) {
		t.Fatalf("recorded %d migrations, want %d", count, len(migrations))
	}
}

func TestStateValueRoundTrip(t *testing.T) {
	t.Parallel()
	database := newTestDB(t)

	if _, ok, err := GetValue(database, StateToken); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := SetValue(database, StateToken, "tok-1"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	value, ok, err := GetValue(database, StateToken)
	if err != nil || !ok || value != "tok-1" {
		t.Fatalf("got %q ok=%v err=%v, want tok-1", value, ok, err)
	}

	if err := SetValue(database, StateToken, "tok-2"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	value, _, err = GetValue(database, StateToken)
	if err != nil || value != "tok-2" {
		t.Fatalf("got %q err=%v after overwrite, want tok-2", value, err)
	}

	if err := DeleteValue(database, StateToken); err != nil {
		t.Fatalf("DeleteValue failed: %v", err)
	}
	if _, ok, _ := GetValue(database, StateToken); ok {
		t.Fatal("key still present after delete")
	}
}

func TestStateKeysAreNormalized(t *testing.T) {
	t.Parallel()
	database := newTestDB(t)

	if err := SetValue(database, "  Base_URL ", "http://example.com/api"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	value, ok, err := GetValue(database, StateBaseURL)
	if err != nil || !ok || value != "http://example.com/api" {
		t.Fatalf("got %q ok=%v err=%v for normalized key", value, ok, err)
	}

	if err := SetValue(database, "   ", "x"); err == nil {
		t.Fatal("expected an error for a blank key")
	}
}

func TestDeleteValueIsIdempotent(t *testing.T) {
	t.Parallel()
	database := newTestDB(t)
	if err := DeleteValue(database, StateUser); err != nil {
		t.Fatalf("deleting a missing key should succeed: %v", err)
	}
}
