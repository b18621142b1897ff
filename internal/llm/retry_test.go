package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		responses []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "first attempt succeeds",
			attempts:  3,
			responses: []MockResponse{{Text: "Study in short sessions."}},
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			attempts:  3,
			responses: []MockResponse{unavailable(), {Text: "ok"}},
			wantCalls: 2,
		},
		{
			name:      "all attempts fail",
			attempts:  3,
			responses: []MockResponse{unavailable(), unavailable(), unavailable()},
			wantCalls: 3,
			wantErr:   true,
		},
		{
			name:      "default single attempt",
			attempts:  1,
			responses: []MockResponse{unavailable(), {Text: "unused"}},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "zero attempts still calls once",
			attempts:  0,
			responses: []MockResponse{unavailable()},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "rejected key is final",
			attempts:  3,
			responses: []MockResponse{{Err: &ErrInvalidAPIKey{Provider: "gemini", Err: errors.New("401")}}, {Text: "unused"}},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "truncated structured output is final",
			attempts:  3,
			responses: []MockResponse{{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"ti`)}}, {Text: "unused"}},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:     "unusable reply retried once",
			attempts: 5,
			responses: []MockResponse{
				{Err: &ErrInvalidResponse{Err: errors.New("empty response")}},
				{Err: &ErrInvalidResponse{Err: errors.New("empty response")}},
				{Text: "unused"},
			},
			wantCalls: 2,
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, fastRetry(tt.attempts), nil).Generate(context.Background(), TextRequest("tip", 64))

			assert.Equal(t, tt.wantCalls, mock.CallCount())
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Text())
		})
	}
}

func TestRetry_StopsShortOfDeadline(t *testing.T) {
	mock := NewMockProvider(unavailable(), MockResponse{Text: "too late"})
	cfg := RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 2}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := WithRetry(mock, cfg, nil).Generate(ctx, TextRequest("plan", 64))

	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail, "the provider error is reported, not the deadline")
	assert.Equal(t, 1, mock.CallCount())
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestRetry_CancelledContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "unused"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, fastRetry(3), nil).Generate(ctx, TextRequest("tip", 64))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
		MockResponse{Text: "ok"},
	)
	cfg := RetryConfig{MaxAttempts: 2, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 2}

	resp, err := WithRetry(mock, cfg, nil).Generate(context.Background(), TextRequest("tip", 64))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
}

func TestRetry_LogsEachRetry(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mock := NewMockProvider(unavailable(), unavailable(), MockResponse{Text: "ok"})

	ctx := WithPurpose(context.Background(), "quiz")
	_, err := WithRetry(mock, fastRetry(3), zap.New(core)).Generate(ctx, TextRequest("quiz", 64))
	require.NoError(t, err)

	retries := logs.FilterMessage("retrying llm request")
	require.Equal(t, 2, retries.Len())
	assert.Equal(t, "quiz", retries.All()[0].ContextMap()["purpose"])
	assert.EqualValues(t, 2, retries.All()[1].ContextMap()["attempt"])
}

func TestBackoffIsCappedWithJitter(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: time.Second, MaxWait: 4 * time.Second, Multiplier: 2}}
	for range 20 {
		wait := r.backoff(10, errors.New("boom"))
		assert.GreaterOrEqual(t, wait, time.Duration(float64(4*time.Second)*0.8))
		assert.LessOrEqual(t, wait, time.Duration(float64(4*time.Second)*1.2))
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), fastRetry(3), nil).ModelID())
}
