package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/casefile-games/mystery-engine/pkg/engine"
	"github.com/casefile-games/mystery-engine/pkg/game"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

// GameInfo mirrors the catalog entries served by GET /v1/games.
type GameInfo struct {
	ID    string         `json:"id"`
	Title game.Localized `json:"title"`
}

// ActionResponse mirrors the API's action and chat responses.
type ActionResponse struct {
	State   *session.State  `json:"state"`
	Effects []engine.Effect `json:"effects"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func listGames(client *http.Client, baseURL string) ([]GameInfo, error) {
	resp, err := client.Get(baseURL + "/v1/games")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var games []GameInfo
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, fmt.Errorf("failed to parse games response: %w", err)
	}
	return games, nil
}

func getGame(client *http.Client, baseURL string, gameID string) (*game.Game, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/games/%s", baseURL, gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get game: %s", errorResp.Error)
	}

	var g game.Game
	if err := json.Unmarshal(body, &g); err != nil {
		return nil, fmt.Errorf("failed to parse game response: %w", err)
	}
	return &g, nil
}

// CreateSessionRequest matches the API request structure
type CreateSessionRequest struct {
	GameID string `json:"gameId"`
}

func createSession(client *http.Client, baseURL string, gameID string) (*session.State, error) {
	req := CreateSessionRequest{GameID: gameID}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/sessions",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to create session: %s", errorResp.Error)
	}

	var st session.State
	if err := json.Unmarshal(body, &st); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &st, nil
}

func postAction(client *http.Client, baseURL string, sessionID uuid.UUID, action engine.Action) (*ActionResponse, error) {
	jsonData, err := engine.EncodeAction(action)
	if err != nil {
		return nil, fmt.Errorf("failed to encode action: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/sessions/%s/actions", baseURL, sessionID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("action failed: %s", errorResp.Error)
	}

	var actionResp ActionResponse
	if err := json.Unmarshal(body, &actionResp); err != nil {
		return nil, fmt.Errorf("failed to parse action response: %w", err)
	}
	return &actionResp, nil
}

// ChatRequest matches the API chat request structure
type ChatRequest struct {
	Message string `json:"message"`
}

func postChat(client *http.Client, baseURL string, sessionID uuid.UUID, message string) (*ActionResponse, error) {
	jsonData, err := json.Marshal(ChatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/sessions/%s/chat", baseURL, sessionID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("chat request failed: %s", errorResp.Error)
	}

	var actionResp ActionResponse
	if err := json.Unmarshal(body, &actionResp); err != nil {
		return nil, fmt.Errorf("failed to parse chat response: %w", err)
	}
	return &actionResp, nil
}
