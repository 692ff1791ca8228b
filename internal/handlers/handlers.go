package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/casefile-games/mystery-engine/internal/services"
	"github.com/casefile-games/mystery-engine/internal/storage"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// loadSession fetches the freshest view of a session: a pending
// autosave snapshot wins over what storage holds.
func loadSession(ctx context.Context, store storage.Storage, autosaver *services.Autosaver, id uuid.UUID) (*session.State, error) {
	if autosaver != nil {
		if st := autosaver.Latest(id); st != nil {
			return st, nil
		}
	}
	return store.LoadSession(ctx, id)
}
