package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrNoProvider is returned by generation services constructed without a
// provider, typically because no API key is configured.
var ErrNoProvider = errors.New("no LLM provider configured: set an API key with `studybuddy key set`")

// ErrRateLimit indicates the provider returned a rate limit error (429).
// RetryAfter is zero when the provider gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidAPIKey indicates the provider refused the configured key.
// Retrying cannot help; the user has to set a different key.
type ErrInvalidAPIKey struct {
	Provider string
	Err      error
}

func (e *ErrInvalidAPIKey) Error() string {
	return fmt.Sprintf("%s rejected the API key: %v", e.Provider, e.Err)
}

func (e *ErrInvalidAPIKey) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned nothing usable: an empty
// reply, or structured output that does not conform to the schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates structured output was cut off at the
// MaxTokens limit. Text requests keep truncated output instead and report
// it through Response.StopReason.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// parseRetryAfter reads a Retry-After header value given in seconds.
// HTTP dates and garbage yield zero.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
