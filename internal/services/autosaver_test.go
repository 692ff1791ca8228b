package services

import (
	"context"
	"testing"
	"time"

	"github.com/casefile-games/mystery-engine/internal/storage"
	"github.com/casefile-games/mystery-engine/pkg/game"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

func autosaverFixture(t *testing.T, debounce time.Duration) (*Autosaver, *storage.MockStorage, *session.State) {
	t.Helper()
	mock := storage.NewMockStorage()
	saver := NewAutosaver(mock, debounce, testLogger())
	t.Cleanup(func() { _ = saver.Close() })

	g := &game.Game{
		ID:           "g",
		StartSceneID: "s1",
		Scenes:       map[string]*game.Scene{"s1": {ID: "s1"}},
	}
	return saver, mock, session.New(g)
}

func waitForSessions(t *testing.T, mock *storage.MockStorage, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if mock.SessionCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Expected %d stored sessions, got %d", want, mock.SessionCount())
}

func TestAutosaver_SavesAfterQuietPeriod(t *testing.T) {
	saver, mock, st := autosaverFixture(t, 20*time.Millisecond)

	saver.Mark(st)
	if mock.SessionCount() != 0 {
		t.Error("Expected no save before the debounce window elapses")
	}

	waitForSessions(t, mock, 1)
}

func TestAutosaver_CoalescesBursts(t *testing.T) {
	saver, mock, st := autosaverFixture(t, 30*time.Millisecond)

	// A burst of marks within the window produces one save carrying
	// the final snapshot.
	saver.Mark(st)
	st.AddItem("key1")
	saver.Mark(st)
	st.AddItem("letter")
	saver.Mark(st)

	waitForSessions(t, mock, 1)

	loaded, err := mock.LoadSession(context.Background(), st.ID)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if len(loaded.Inventory) != 2 {
		t.Errorf("Expected latest snapshot with 2 items, got %v", loaded.Inventory)
	}
}

func TestAutosaver_Latest(t *testing.T) {
	saver, _, st := autosaverFixture(t, time.Hour)

	if saver.Latest(st.ID) != nil {
		t.Error("Expected no pending snapshot before Mark")
	}

	st.AddItem("key1")
	saver.Mark(st)

	pending := saver.Latest(st.ID)
	if pending == nil {
		t.Fatal("Expected a pending snapshot after Mark")
	}
	if len(pending.Inventory) != 1 {
		t.Errorf("Expected pending snapshot to carry the latest state, got %v", pending.Inventory)
	}

	// The returned snapshot is a copy.
	pending.AddItem("letter")
	if got := saver.Latest(st.ID); len(got.Inventory) != 1 {
		t.Error("Expected Latest to return an isolated clone")
	}
}

func TestAutosaver_Forget(t *testing.T) {
	saver, mock, st := autosaverFixture(t, 20*time.Millisecond)

	saver.Mark(st)
	saver.Forget(st.ID)

	time.Sleep(60 * time.Millisecond)
	if mock.SessionCount() != 0 {
		t.Error("Expected no save after Forget")
	}
}

func TestAutosaver_CloseFlushesPending(t *testing.T) {
	saver, mock, st := autosaverFixture(t, time.Hour)

	saver.Mark(st)
	if err := saver.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if mock.SessionCount() != 1 {
		t.Error("Expected Close to flush the pending session")
	}

	// Marks after Close are ignored.
	saver.Mark(st)
	time.Sleep(10 * time.Millisecond)
	if mock.SessionCount() != 1 {
		t.Error("Expected no saves after Close")
	}
}
