package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestSQLiteStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.db")
	ss, err := NewSQLiteStorage(path, t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("Failed to create sqlite storage: %v", err)
	}
	t.Cleanup(func() { ss.Close() })
	return ss
}

func TestSQLiteStorage_SaveAndLoadSession(t *testing.T) {
	ss := newTestSQLiteStorage(t)
	ctx := context.Background()

	st := testSession(t)
	if err := ss.SaveSession(ctx, st.ID, st); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	loaded, err := ss.LoadSession(ctx, st.ID)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected non-nil session")
	}
	if loaded.ID != st.ID {
		t.Errorf("Expected ID %v, got %v", st.ID, loaded.ID)
	}
	if len(loaded.Inventory) != 1 || loaded.Inventory[0] != "magnifier" {
		t.Errorf("Expected inventory [magnifier], got %v", loaded.Inventory)
	}
}

func TestSQLiteStorage_SaveOverwrites(t *testing.T) {
	ss := newTestSQLiteStorage(t)
	ctx := context.Background()

	st := testSession(t)
	if err := ss.SaveSession(ctx, st.ID, st); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	st.AddItem("lockpick")
	if err := ss.SaveSession(ctx, st.ID, st); err != nil {
		t.Fatalf("Failed to re-save session: %v", err)
	}

	loaded, err := ss.LoadSession(ctx, st.ID)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if len(loaded.Inventory) != 2 {
		t.Errorf("Expected 2 inventory items after overwrite, got %d", len(loaded.Inventory))
	}
}

func TestSQLiteStorage_LoadNonExistentSession(t *testing.T) {
	ss := newTestSQLiteStorage(t)

	loaded, err := ss.LoadSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error for non-existent session, got: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil for non-existent session")
	}
}

func TestSQLiteStorage_DeleteSession(t *testing.T) {
	ss := newTestSQLiteStorage(t)
	ctx := context.Background()

	st := testSession(t)
	if err := ss.SaveSession(ctx, st.ID, st); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if err := ss.DeleteSession(ctx, st.ID); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	loaded, err := ss.LoadSession(ctx, st.ID)
	if err != nil {
		t.Fatalf("Unexpected error after delete: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil after delete")
	}

	// Deleting a missing session is not an error.
	if err := ss.DeleteSession(ctx, uuid.New()); err != nil {
		t.Errorf("Expected delete of missing session to succeed: %v", err)
	}
}

func TestSQLiteStorage_Ping(t *testing.T) {
	ss := newTestSQLiteStorage(t)
	if err := ss.Ping(context.Background()); err != nil {
		t.Errorf("Expected ping to succeed: %v", err)
	}
}
