// Package settings holds the user's stored API key and accessibility
// preferences. Each value lives under its own key in the KV store as JSON.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/studybuddy/internal/logging"
	"github.com/abhisek/studybuddy/internal/store"
)

// Storage keys.
const (
	KeyAPIKey       = "gemini_api_key"
	KeyHighContrast = "@settings_high_contrast"
	KeyTextSize     = "@settings_text_size"
	KeyTextToSpeech = "@settings_text_to_speech"
)

// Text size bounds, as a multiplier of the base size.
const (
	DefaultTextSize = 1.0
	MinTextSize     = 0.5
	MaxTextSize     = 2.0
)

// ErrEmptyAPIKey is returned when a blank API key is submitted.
var ErrEmptyAPIKey = errors.New("please enter a valid API key")

// Preferences are the accessibility settings.
type Preferences struct {
	HighContrast bool    `json:"highContrast"`
	TextSize     float64 `json:"textSize"`
	TextToSpeech bool    `json:"textToSpeech"`
}

// DefaultPreferences returns the settings used before anything is saved.
func DefaultPreferences() Preferences {
	return Preferences{TextSize: DefaultTextSize}
}

// Session is the user's stored configuration.
type Session struct {
	APIKey      string
	Preferences Preferences
}

// HasAPIKey reports whether a key is stored.
func (s Session) HasAPIKey() bool { return s.APIKey != "" }

// ValidateAPIKey trims key and rejects it when empty.
func ValidateAPIKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyAPIKey
	}
	return key, nil
}

// ValidateTextSize rejects sizes outside [MinTextSize, MaxTextSize].
func ValidateTextSize(size float64) error {
	if size < MinTextSize || size > MaxTextSize {
		return fmt.Errorf("text size %.2f out of range [%.1f, %.1f]", size, MinTextSize, MaxTextSize)
	}
	return nil
}

// Load reads the session from kv. Missing or unreadable values keep their
// defaults; failures are logged, never returned.
func Load(ctx context.Context, kv store.KV, logger *zap.Logger) Session {
	logger = logging.OrNop(logger)
	s := Session{Preferences: DefaultPreferences()}

	loadValue(ctx, kv, logger, KeyAPIKey, &s.APIKey)
	loadValue(ctx, kv, logger, KeyHighContrast, &s.Preferences.HighContrast)
	loadValue(ctx, kv, logger, KeyTextSize, &s.Preferences.TextSize)
	loadValue(ctx, kv, logger, KeyTextToSpeech, &s.Preferences.TextToSpeech)

	if ValidateTextSize(s.Preferences.TextSize) != nil {
		logger.Warn("stored text size out of range, using default",
			zap.Float64("text_size", s.Preferences.TextSize))
		s.Preferences.TextSize = DefaultTextSize
	}
	return s
}

func loadValue[T any](ctx context.Context, kv store.KV, logger *zap.Logger, key string, dst *T) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		logger.Warn("load setting", zap.String("key", key), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logger.Warn("parse setting", zap.String("key", key), zap.Error(err))
		return
	}
	*dst = v
}

func saveValue(ctx context.Context, kv store.KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SaveAPIKey validates and stores key, returning the trimmed value.
func SaveAPIKey(ctx context.Context, kv store.KV, key string) (string, error) {
	key, err := ValidateAPIKey(key)
	if err != nil {
		return "", err
	}
	return key, saveValue(ctx, kv, KeyAPIKey, key)
}

// ClearAPIKey removes the stored key.
func ClearAPIKey(ctx context.Context, kv store.KV) error {
	if err := kv.Remove(ctx, KeyAPIKey); err != nil {
		return fmt.Errorf("clear api key: %w", err)
	}
	return nil
}

// SetHighContrast stores the high contrast preference.
func SetHighContrast(ctx context.Context, kv store.KV, on bool) error {
	return saveValue(ctx, kv, KeyHighContrast, on)
}

// SetTextSize stores the text size multiplier.
func SetTextSize(ctx context.Context, kv store.KV, size float64) error {
	if err := ValidateTextSize(size); err != nil {
		return err
	}
	return saveValue(ctx, kv, KeyTextSize, size)
}

// SetTextToSpeech stores the text-to-speech preference.
func SetTextToSpeech(ctx context.Context, kv store.KV, on bool) error {
	return saveValue(ctx, kv, KeyTextToSpeech, on)
}
