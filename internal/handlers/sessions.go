package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/casefile-games/mystery-engine/internal/services"
	"github.com/casefile-games/mystery-engine/internal/storage"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

// SessionHandler manages play session lifecycle.
// Routes:
// POST /v1/sessions        - Create a new session for a game
// GET /v1/sessions/{id}    - Read session state by ID
// DELETE /v1/sessions/{id} - Delete session by ID
type SessionHandler struct {
	storage   storage.Storage
	autosaver *services.Autosaver
	logger    *slog.Logger
}

func NewSessionHandler(storage storage.Storage, autosaver *services.Autosaver, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		storage:   storage,
		autosaver: autosaver,
		logger:    logger,
	}
}

// CreateSessionRequest defines the request body for creating a session
type CreateSessionRequest struct {
	GameID string `json:"gameId"`
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")
	var sessionID uuid.UUID
	if path != "" {
		var err error
		sessionID, err = uuid.Parse(path)
		if err != nil {
			h.logger.Warn("Invalid session ID", "id", path, "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
			return
		}
	}

	switch r.Method {
	case http.MethodPost:
		if sessionID != uuid.Nil {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "POST is not supported on a session")
			return
		}
		h.handleCreate(w, r)

	case http.MethodGet:
		if sessionID == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Session ID is required for GET requests")
			return
		}
		h.handleRead(w, r, sessionID)

	case http.MethodDelete:
		if sessionID == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Session ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, sessionID)

	default:
		h.logger.Warn("Method not allowed for sessions endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST, GET, DELETE")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Creating new session")

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if req.GameID == "" {
		h.logger.Warn("Missing required field: gameId")
		writeError(w, h.logger, http.StatusBadRequest, "gameId field is required")
		return
	}

	g, err := h.storage.GetGame(r.Context(), req.GameID)
	if err != nil {
		h.logger.Warn("Failed to load game", "game_id", req.GameID, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Failed to load game: "+err.Error())
		return
	}
	if g == nil {
		h.logger.Warn("Game not found", "game_id", req.GameID)
		writeError(w, h.logger, http.StatusNotFound, "Game not found")
		return
	}

	st := session.New(g)
	if err := h.storage.SaveSession(r.Context(), st.ID, st); err != nil {
		h.logger.Error("Failed to save new session", "error", err, "id", st.ID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.logger.Debug("Session created", "id", st.ID.String(), "game_id", g.ID)
	writeJSON(w, h.logger, http.StatusCreated, st)
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID) {
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
	writeJSON(w, h.logger, http.StatusOK, st)
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID) {
	if h.autosaver != nil {
		h.autosaver.Forget(sessionID)
	}
	if err := h.storage.DeleteSession(r.Context(), sessionID); err != nil {
		h.logger.Error("Failed to delete session", "error", err, "id", sessionID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	h.logger.Debug("Session deleted", "id", sessionID.String())
	w.WriteHeader(http.StatusNoContent)
}
