package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// DefaultMaxTokens caps a response when the request leaves MaxTokens unset.
const DefaultMaxTokens = 1024

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive either schema-validated
// JSON or free-form text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Study plans, quizzes and tips
	// are single-turn, so this holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is raw text as json.RawMessage.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	// Zero means DefaultMaxTokens.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as tool name for Anthropic,
	// schema name for OpenAI). Kebab-case, e.g. "quiz-questions".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. Otherwise it holds the
	// model's text as returned; use Text to read it.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// TextRequest builds a single-turn request for free-form text output.
func TextRequest(prompt string, maxTokens int) Request {
	return Request{
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens: maxTokens,
	}
}

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}

// responseContent turns the text a provider returned into Response content.
// Text requests keep the output verbatim, truncated or not. Schema requests
// must validate, and a truncated structured reply is an error.
func responseContent(req Request, text, stopReason string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ErrInvalidResponse{Err: errors.New("empty response")}
	}
	content := json.RawMessage(text)
	if req.Schema == nil {
		return content, nil
	}
	if stopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// Text returns the response content as plain text. Content that is a JSON
// string literal is unquoted; anything else is returned verbatim.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	trimmed := strings.TrimSpace(string(r.Content))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
			return s
		}
	}
	return string(r.Content)
}
