package settings

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestStore creates a store over an in-memory SQLite database with the
// settings table.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestStoreGetSet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on missing key error = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "hub_id", "hub-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := store.Get(ctx, "hub_id")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "hub-1" {
		t.Errorf("Get() = %q, want %q", got, "hub-1")
	}
}

func TestStoreSetReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "hub_id", "hub-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "hub_id", "hub-2"); err != nil {
		t.Fatalf("second Set() error = %v", err)
	}

	got, err := store.Get(ctx, "hub_id")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "hub-2" {
		t.Errorf("Get() = %q, want %q", got, "hub-2")
	}
}

func TestStoreBool(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Never-set keys read as false so a first run behaves like a cleared
	// flag rather than an error.
	got, err := store.GetBool(ctx, KeyProfileDone)
	if err != nil {
		t.Fatalf("GetBool() on missing key error = %v", err)
	}
	if got {
		t.Error("GetBool() on missing key = true, want false")
	}

	if err := store.SetBool(ctx, KeyProfileDone, true); err != nil {
		t.Fatalf("SetBool() error = %v", err)
	}
	got, err = store.GetBool(ctx, KeyProfileDone)
	if err != nil {
		t.Fatalf("GetBool() error = %v", err)
	}
	if !got {
		t.Error("GetBool() = false after SetBool(true)")
	}
}

func TestStoreBoolInvalid(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, KeyProfileDone, "not-a-bool"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := store.GetBool(ctx, KeyProfileDone); err == nil {
		t.Error("GetBool() on non-boolean value returned nil error")
	}
}

func TestStoreDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "hub_id", "hub-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Delete(ctx, "hub_id"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "hub_id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "hub_id"); err != nil {
		t.Errorf("Delete() on missing key error = %v, want nil", err)
	}
}
