package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/casefile-games/mystery-engine/internal/storage"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

// saveTimeout bounds a single background save.
const saveTimeout = 5 * time.Second

// Autosaver writes dirty session snapshots to storage after a quiet
// period, coalescing bursts of actions into one save per session.
// Handlers call Mark after every state change; the latest snapshot
// wins.
type Autosaver struct {
	storage  storage.Storage
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending map[uuid.UUID]*pendingSave
	closed  bool
	wg      sync.WaitGroup
}

type pendingSave struct {
	timer *time.Timer
	state *session.State
}

func NewAutosaver(st storage.Storage, debounce time.Duration, logger *slog.Logger) *Autosaver {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Autosaver{
		storage:  st,
		logger:   logger,
		debounce: debounce,
		pending:  make(map[uuid.UUID]*pendingSave),
	}
}

// Mark schedules st for saving after the debounce window. A newer Mark
// for the same session replaces the snapshot and restarts the window.
func (a *Autosaver) Mark(st *session.State) {
	snapshot := st.Clone()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	if p, ok := a.pending[snapshot.ID]; ok {
		p.state = snapshot
		p.timer.Reset(a.debounce)
		return
	}

	id := snapshot.ID
	p := &pendingSave{state: snapshot}
	p.timer = time.AfterFunc(a.debounce, func() {
		a.flush(id)
	})
	a.pending[id] = p
}

// Latest returns the pending not-yet-flushed snapshot for the session,
// or nil. Readers consult this before storage so a request arriving
// inside the debounce window sees the newest state.
func (a *Autosaver) Latest(id uuid.UUID) *session.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pending[id]; ok {
		return p.state.Clone()
	}
	return nil
}

// Forget drops any pending save for the session, used when the session
// is deleted.
func (a *Autosaver) Forget(id uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pending[id]; ok {
		p.timer.Stop()
		delete(a.pending, id)
	}
}

func (a *Autosaver) flush(id uuid.UUID) {
	a.mu.Lock()
	p, ok := a.pending[id]
	if !ok {
		a.mu.Unlock()
		return
	}
	delete(a.pending, id)
	st := p.state
	a.wg.Add(1)
	a.mu.Unlock()

	defer a.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := a.storage.SaveSession(ctx, id, st); err != nil {
		a.logger.Error("Autosave failed", "uuid", id, "error", err)
		return
	}
	a.logger.Debug("Session autosaved", "uuid", id)
}

// Close flushes every pending session synchronously and stops the
// autosaver. Called during graceful shutdown.
func (a *Autosaver) Close() error {
	a.mu.Lock()
	a.closed = true
	ids := make([]uuid.UUID, 0, len(a.pending))
	for id, p := range a.pending {
		p.timer.Stop()
		ids = append(ids, id)
	}
	a.mu.Unlock()

	for _, id := range ids {
		a.flush(id)
	}
	a.wg.Wait()
	return nil
}
