package services

import (
	"context"
	"sync"
)

// MockAIService is a mock implementation of AIService for testing and
// offline development.
type MockAIService struct {
	mu        sync.Mutex
	responses []string
	next      int
	err       error
	requests  []NPCChatRequest
}

// Ensure MockAIService implements AIService interface
var _ AIService = (*MockAIService)(nil)

// NewMockAIService creates a mock that replies with canned text.
func NewMockAIService() *MockAIService {
	return &MockAIService{
		responses: []string{"I have nothing more to say about that."},
	}
}

// SetResponses configures the replies returned in order; the last one
// repeats once exhausted.
func (m *MockAIService) SetResponses(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = responses
	m.next = 0
}

// SetError configures the mock to fail with the given error
func (m *MockAIService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Requests returns the requests received so far
func (m *MockAIService) Requests() []NPCChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]NPCChatRequest(nil), m.requests...)
}

// AskNPC returns the next canned reply, parsing option markers the
// same way the real providers do.
func (m *MockAIService) AskNPC(ctx context.Context, req NPCChatRequest) (*NPCChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}

	raw := m.responses[m.next]
	if m.next < len(m.responses)-1 {
		m.next++
	}

	text, triggerIdx := parseOptionTrigger(raw)
	return &NPCChatResponse{Text: text, TriggerOptionIndex: triggerIdx}, nil
}
