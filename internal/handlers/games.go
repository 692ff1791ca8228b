package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/casefile-games/mystery-engine/internal/storage"
)

// GamesHandler serves the authored game catalog.
// Routes:
// GET /v1/games      - List available games
// GET /v1/games/{id} - Read one game's full content
type GamesHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewGamesHandler(storage storage.Storage, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *GamesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for games endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}

	gameID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/games"), "/")
	if gameID == "" {
		h.handleList(w, r)
		return
	}
	h.handleRead(w, r, gameID)
}

func (h *GamesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	games, err := h.storage.ListGames(r.Context())
	if err != nil {
		h.logger.Error("Failed to list games", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list games")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, games)
}

func (h *GamesHandler) handleRead(w http.ResponseWriter, r *http.Request, gameID string) {
	g, err := h.storage.GetGame(r.Context(), gameID)
	if err != nil {
		h.logger.Error("Failed to load game", "game_id", gameID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game")
		return
	}
	if g == nil {
		h.logger.Warn("Game not found", "game_id", gameID)
		writeError(w, h.logger, http.StatusNotFound, "Game not found")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, g)
}
