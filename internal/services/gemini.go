package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	DefaultGeminiTemperature = 0.7
	DefaultGeminiMaxTokens   = 1024
)

// GeminiService implements AIService using the Google Gemini API.
type GeminiService struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure GeminiService implements AIService interface
var _ AIService = (*GeminiService)(nil)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiChatRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiChatResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func NewGeminiService(apiKey string, modelName string, logger *slog.Logger) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
		baseURL:   geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// AskNPC generates the NPC's in-character reply to a question
func (g *GeminiService) AskNPC(ctx context.Context, req NPCChatRequest) (*NPCChatResponse, error) {
	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, msg := range req.History {
		role := ChatRoleUser
		if msg.Role == ChatRoleModel {
			role = ChatRoleModel
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  ChatRoleUser,
		Parts: []geminiPart{{Text: req.Question}},
	})

	temperature := DefaultGeminiTemperature
	geminiReq := geminiChatRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: buildNPCSystemPrompt(req)}},
		},
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			Temperature:     &temperature,
			MaxOutputTokens: DefaultGeminiMaxTokens,
		},
	}

	raw, err := g.generateContent(ctx, geminiReq)
	if err != nil {
		return nil, err
	}

	text, triggerIdx := parseOptionTrigger(raw)
	return &NPCChatResponse{Text: text, TriggerOptionIndex: triggerIdx}, nil
}

func (g *GeminiService) generateContent(ctx context.Context, geminiReq geminiChatRequest) (string, error) {
	reqBody, err := json.Marshal(geminiReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.modelName)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp geminiChatResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("API error: %s", geminiResp.Error.Message)
	}

	var responseText string
	for _, candidate := range geminiResp.Candidates {
		for _, part := range candidate.Content.Parts {
			responseText += part.Text
		}
		break // Only the first candidate is used
	}

	if responseText == "" {
		responseText = "(no response)"
	}

	return responseText, nil
}
