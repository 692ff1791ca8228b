package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"github.com/casefile-games/mystery-engine/pkg/game"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func testSession(t *testing.T) *session.State {
	t.Helper()
	g := &game.Game{
		ID:           "test-game",
		StartSceneID: "s1",
		Scenes:       map[string]*game.Scene{"s1": {ID: "s1"}},
	}
	st := session.New(g)
	st.AddItem("magnifier")
	return st
}

func newTestRedisStorage(t *testing.T) *RedisStorage {
	t.Helper()
	mr := miniredis.RunT(t)
	rs, err := NewRedisStorage("redis://"+mr.Addr(), t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("Failed to create redis storage: %v", err)
	}
	t.Cleanup(func() { rs.Close() })
	return rs
}

func TestRedisStorage_SaveAndLoadSession(t *testing.T) {
	rs := newTestRedisStorage(t)
	ctx := context.Background()

	st := testSession(t)
	if err := rs.SaveSession(ctx, st.ID, st); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	loaded, err := rs.LoadSession(ctx, st.ID)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected non-nil session")
	}
	if loaded.ID != st.ID {
		t.Errorf("Expected ID %v, got %v", st.ID, loaded.ID)
	}
	if loaded.CurrentSceneID != "s1" {
		t.Errorf("Expected scene 's1', got %v", loaded.CurrentSceneID)
	}
	if len(loaded.Inventory) != 1 || loaded.Inventory[0] != "magnifier" {
		t.Errorf("Expected inventory [magnifier], got %v", loaded.Inventory)
	}
	if loaded.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set on save")
	}
}

func TestRedisStorage_LoadNonExistentSession(t *testing.T) {
	rs := newTestRedisStorage(t)

	loaded, err := rs.LoadSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error for non-existent session, got: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil for non-existent session")
	}
}

func TestRedisStorage_DeleteSession(t *testing.T) {
	rs := newTestRedisStorage(t)
	ctx := context.Background()

	st := testSession(t)
	if err := rs.SaveSession(ctx, st.ID, st); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if err := rs.DeleteSession(ctx, st.ID); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	loaded, err := rs.LoadSession(ctx, st.ID)
	if err != nil {
		t.Fatalf("Unexpected error after delete: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil after delete")
	}
}

func TestRedisStorage_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	rs, err := NewRedisStorage("redis://"+mr.Addr(), t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("Failed to create redis storage: %v", err)
	}
	defer rs.Close()

	if err := rs.Ping(context.Background()); err != nil {
		t.Errorf("Expected ping to succeed: %v", err)
	}

	mr.Close()
	if err := rs.Ping(context.Background()); err == nil {
		t.Error("Expected ping to fail after server shutdown")
	}
}

func TestNewRedisStorage_InvalidURL(t *testing.T) {
	if _, err := NewRedisStorage("not-a-url", t.TempDir(), testLogger()); err == nil {
		t.Error("Expected error for invalid redis url")
	}
}
