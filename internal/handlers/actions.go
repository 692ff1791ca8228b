package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/casefile-games/mystery-engine/internal/services"
	"github.com/casefile-games/mystery-engine/internal/storage"
	"github.com/casefile-games/mystery-engine/pkg/engine"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

// ActionHandler resolves player actions against a session.
// Routes:
// POST /v1/sessions/{id}/actions - Apply one action, returns state + effects
type ActionHandler struct {
	storage   storage.Storage
	autosaver *services.Autosaver
	resolver  *engine.Resolver
	logger    *slog.Logger
}

func NewActionHandler(storage storage.Storage, autosaver *services.Autosaver, resolver *engine.Resolver, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{
		storage:   storage,
		autosaver: autosaver,
		resolver:  resolver,
		logger:    logger,
	}
}

// ActionResponse is the result of resolving one action.
type ActionResponse struct {
	State   *session.State  `json:"state"`
	Effects []engine.Effect `json:"effects"`
}

// sessionIDFromPath extracts the UUID segment from paths shaped like
// /v1/sessions/{id}/{leaf}.
func sessionIDFromPath(path, leaf string) (uuid.UUID, bool) {
	trimmed := strings.Trim(strings.TrimPrefix(path, "/v1/sessions"), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[1] != leaf {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for actions endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	sessionID, ok := sessionIDFromPath(r.URL.Path, "actions")
	if !ok {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Failed to read request body")
		return
	}

	action, err := engine.DecodeAction(body)
	if err != nil {
		h.logger.Warn("Invalid action in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid action: "+err.Error())
		return
	}

	st, err := loadSession(r.Context(), h.storage, h.autosaver, sessionID)
	if err != nil {
		h.logger.Error("Failed to load session", "error", err, "id", sessionID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if st == nil {
		h.logger.Warn("Session not found", "id", sessionID.String())
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return
	}

	g, err := h.storage.GetGame(r.Context(), st.GameID)
	if err != nil || g == nil {
		h.logger.Error("Failed to load game for session", "game_id", st.GameID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game content")
		return
	}

	next, effects := h.resolver.Resolve(g, st, action)

	// Ended games persist immediately; everything else rides the
	// autosave debounce.
	if next.IsGameFinished && !st.IsGameFinished {
		h.autosaver.Forget(next.ID)
		if err := h.storage.SaveSession(r.Context(), next.ID, next); err != nil {
			h.logger.Error("Failed to save finished session", "error", err, "id", next.ID.String())
		}
	} else {
		h.autosaver.Mark(next)
	}

	if effects == nil {
		effects = []engine.Effect{}
	}
	writeJSON(w, h.logger, http.StatusOK, ActionResponse{State: next, Effects: effects})
}
