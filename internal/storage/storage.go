package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/casefile-games/mystery-engine/pkg/game"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the service connection
	Close() error
}

// GameInfo is a catalog entry for one authored game.
type GameInfo struct {
	ID    string         `json:"id"`
	Title game.Localized `json:"title"`
}

// Storage persists play sessions and serves the authored game catalog.
// Sessions live in the configured backend; game content is
// filesystem-backed and read-only at runtime.
type Storage interface {
	HealthChecker
	Closer

	// SaveSession saves a session snapshot under its UUID
	SaveSession(ctx context.Context, id uuid.UUID, st *session.State) error

	// LoadSession retrieves a session by UUID.
	// Returns nil if the session doesn't exist.
	LoadSession(ctx context.Context, id uuid.UUID) (*session.State, error)

	// DeleteSession removes a session by UUID
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// ListGames returns catalog entries for all authored games
	ListGames(ctx context.Context) ([]GameInfo, error)

	// GetGame loads one game's full content by id.
	// Returns nil if no such game is authored.
	GetGame(ctx context.Context, gameID string) (*game.Game, error)
}
