package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is a canned reply. Text is shorthand for free-form output
// and is used when Content is empty.
type MockResponse struct {
	Content json.RawMessage
	Text    string
	Usage   Usage
	Err     error
}

// MockProvider replays canned responses in FIFO order and records every
// request. It backs the "mock" provider setting, where an empty queue makes
// every service fall back to its offline content.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewMockText creates a MockProvider answering each call with the next
// text reply.
func NewMockText(replies ...string) *MockProvider {
	m := &MockProvider{}
	for _, r := range replies {
		m.responses = append(m.responses, MockResponse{Text: r})
	}
	return m
}

// Generate returns the next canned response. A done context or an empty
// queue yields an error without consuming anything.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: errors.New("mock: no canned response")}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	content := resp.Content
	if len(content) == 0 {
		content = json.RawMessage(resp.Text)
	}
	return &Response{
		Content:    content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Prompts returns the last user message of each recorded call.
func (m *MockProvider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		prompt := ""
		for _, msg := range c.Messages {
			if msg.Role == RoleUser {
				prompt = msg.Content
			}
		}
		out = append(out, prompt)
	}
	return out
}
