package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/casefile-games/mystery-engine/pkg/engine"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

func postAction(t *testing.T, h *ActionHandler, sessionID uuid.UUID, body string) (*httptest.ResponseRecorder, *ActionResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID.String()+"/actions", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return w, nil
	}
	var resp ActionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode action response: %v", err)
	}
	return w, &resp
}

func newActionFixture(t *testing.T) (*fixture, *ActionHandler, *session.State) {
	t.Helper()
	f := newFixture()
	sh := NewSessionHandler(f.storage, f.autosaver, testLogger())
	st := createSession(t, f, sh)
	h := NewActionHandler(f.storage, f.autosaver, f.resolver, testLogger())
	return f, h, st
}

func TestActionHandler_TriggerHotspot(t *testing.T) {
	_, h, st := newActionFixture(t)

	w, resp := postAction(t, h, st.ID, `{"type": "trigger_hotspot", "hotspotId": "hs_key"}`)
	if resp == nil {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(resp.State.Inventory) != 1 || resp.State.Inventory[0] != "key" {
		t.Errorf("Expected inventory [key], got %v", resp.State.Inventory)
	}
	if !engine.HasEffect(resp.Effects, engine.EffectItemObtained) {
		t.Error("Expected item_obtained effect")
	}
}

func TestActionHandler_GameEndingPersistsImmediately(t *testing.T) {
	f, h, st := newActionFixture(t)

	// Accusing the killer ends the game; the snapshot must not wait
	// for the autosave debounce.
	if w, resp := postAction(t, h, st.ID, `{"type": "trigger_hotspot", "hotspotId": "hs_key"}`); resp == nil {
		t.Fatalf("Failed to collect the evidence: %d", w.Code)
	}
	w, resp := postAction(t, h, st.ID, `{"type": "submit_accusation", "npcId": "npc_clerk"}`)
	if resp == nil {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !resp.State.IsGameFinished {
		t.Error("Expected finished game")
	}

	loaded, err := f.storage.LoadSession(httptest.NewRequest("GET", "/", nil).Context(), st.ID)
	if err != nil || loaded == nil {
		t.Fatalf("Expected stored session, got %v, %v", loaded, err)
	}
	if !loaded.IsGameFinished {
		t.Error("Expected the finished state to be persisted synchronously")
	}
}

func TestActionHandler_Errors(t *testing.T) {
	_, h, st := newActionFixture(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
	}{
		{
			name:     "method not allowed",
			method:   http.MethodGet,
			path:     "/v1/sessions/" + st.ID.String() + "/actions",
			body:     "",
			wantCode: http.StatusMethodNotAllowed,
		},
		{
			name:     "bad session id",
			method:   http.MethodPost,
			path:     "/v1/sessions/nope/actions",
			body:     `{"type": "go_back"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown action type",
			method:   http.MethodPost,
			path:     "/v1/sessions/" + st.ID.String() + "/actions",
			body:     `{"type": "cast_spell"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing session",
			method:   http.MethodPost,
			path:     "/v1/sessions/" + uuid.NewString() + "/actions",
			body:     `{"type": "go_back"}`,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Errorf("Expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestActionHandler_SequentialActions(t *testing.T) {
	_, h, st := newActionFixture(t)

	// Requests inside the autosave debounce window must still see
	// each other's writes via the pending snapshot.
	w, resp := postAction(t, h, st.ID, `{"type": "trigger_hotspot", "hotspotId": "hs_talk"}`)
	if resp == nil {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp.State.ActiveDialogueNPCID != "npc_clerk" {
		t.Errorf("Expected dialogue with npc_clerk, got %q", resp.State.ActiveDialogueNPCID)
	}
	if !engine.HasEffect(resp.Effects, engine.EffectDialogueOpened) {
		t.Error("Expected dialogue_opened effect")
	}

	w, resp = postAction(t, h, st.ID, `{"type": "select_dialogue_option", "optionIndex": 0}`)
	if resp == nil {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp.State.ActiveDialogueNodeID != "c2" {
		t.Errorf("Expected dialogue to advance to c2, got %q", resp.State.ActiveDialogueNodeID)
	}
}
