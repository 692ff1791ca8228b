package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/casefile-games/mystery-engine/internal/services"
	"github.com/casefile-games/mystery-engine/internal/storage"
	"github.com/casefile-games/mystery-engine/pkg/engine"
)

// chatTimeout bounds one AI provider round trip.
const chatTimeout = 30 * time.Second

// ChatHandler answers free-text questions asked of the NPC in the
// active dialogue.
// Routes:
// POST /v1/sessions/{id}/chat - Ask the active NPC a question
type ChatHandler struct {
	storage   storage.Storage
	autosaver *services.Autosaver
	aiService services.AIService
	resolver  *engine.Resolver
	logger    *slog.Logger
}

func NewChatHandler(storage storage.Storage, autosaver *services.Autosaver, aiService services.AIService, resolver *engine.Resolver, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		storage:   storage,
		autosaver: autosaver,
		aiService: aiService,
		resolver:  resolver,
		logger:    logger,
	}
}

// ChatRequest defines the request body for NPC chat
type ChatRequest struct {
	Message string `json:"message"`
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for chat endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	sessionID, ok := sessionIDFromPath(r.URL.Path, "chat")
	if !ok {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Message == "" {
		writeError(w, h.logger, http.StatusBadRequest, "message cannot be empty")
		return
	}

	st, err := loadSession(r.Context(), h.storage, h.autosaver, sessionID)
	if err != nil {
		h.logger.Error("Failed to load session", "error", err, "id", sessionID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if st == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return
	}
	if !st.InDialogue() {
		writeError(w, h.logger, http.StatusConflict, "No active dialogue to chat in")
		return
	}

	g, err := h.storage.GetGame(r.Context(), st.GameID)
	if err != nil || g == nil {
		h.logger.Error("Failed to load game for session", "game_id", st.GameID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game content")
		return
	}

	npc, ok := g.NPC(st.ActiveDialogueNPCID)
	if !ok {
		writeError(w, h.logger, http.StatusConflict, "Active dialogue NPC not found in content")
		return
	}
	if !npc.AIChatEnabled() {
		writeError(w, h.logger, http.StatusConflict, "This NPC only answers through dialogue options")
		return
	}
	node, _ := npc.Node(st.ActiveDialogueNodeID)

	// Register the question so a reply arriving after the dialogue
	// moves on is discarded.
	asked, tag := h.resolver.BeginChat(st)
	h.autosaver.Mark(asked)

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	aiResp, err := h.aiService.AskNPC(ctx, services.NPCChatRequest{
		Game:     g,
		NPC:      npc,
		Node:     node,
		Question: req.Message,
	})
	if err != nil {
		h.logger.Error("AI chat request failed", "error", err, "npc_id", npc.ID)
		writeError(w, h.logger, http.StatusBadGateway, "Failed to generate reply. Please try again.")
		return
	}

	next, effects := h.resolver.ApplyChatReply(g, asked, engine.ChatReply{
		Tag:                tag,
		Text:               aiResp.Text,
		TriggerOptionIndex: aiResp.TriggerOptionIndex,
	})
	h.autosaver.Mark(next)

	if effects == nil {
		effects = []engine.Effect{}
	}
	writeJSON(w, h.logger, http.StatusOK, ActionResponse{State: next, Effects: effects})
}
