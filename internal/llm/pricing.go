package llm

import (
	"strings"
	"time"
)

// ModelCost holds USD pricing per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID as recorded in the event
// log, or nil if unknown. OpenRouter IDs ("google/gemini-2.0-flash") and
// dated snapshots ("gpt-4o-mini-2024-07-18") resolve to their base model.
func LookupCost(modelID string) *ModelCost {
	candidates := []string{modelID}
	if _, bare, ok := strings.Cut(modelID, "/"); ok {
		candidates = append(candidates, bare)
	}
	for _, id := range candidates {
		if c, ok := modelCosts[id]; ok {
			return &c
		}
		if base, ok := stripSnapshotDate(id); ok {
			if c, ok := modelCosts[base]; ok {
				return &c
			}
		}
	}
	return nil
}

// stripSnapshotDate removes a trailing -YYYY-MM-DD.
func stripSnapshotDate(id string) (string, bool) {
	const layout = "2006-01-02"
	if len(id) <= len(layout)+1 || id[len(id)-len(layout)-1] != '-' {
		return "", false
	}
	if _, err := time.Parse(layout, id[len(id)-len(layout):]); err != nil {
		return "", false
	}
	return id[:len(id)-len(layout)-1], true
}

// modelCosts covers the models the provider config offers, keyed by the ID
// each provider reports back. Prices from models.dev, 2026-02.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},

	// OpenAI
	"gpt-4o":      {2.5, 10},
	"gpt-4o-mini": {0.15, 0.6},

	// Gemini
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-pro":        {1.25, 10},

	// OpenRouter default, free while experimental.
	"gemini-2.0-flash-exp": {0, 0},
}
