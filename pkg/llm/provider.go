package llm

import (
	"context"
	"errors"
)

// ErrContentBlocked reports that the provider withheld its completion
// (safety filter / content policy). Callers substitute a fixed sentinel
// string for the output instead of propagating this.
var ErrContentBlocked = errors.New("completion withheld by provider content policy")

// GenerateOptions carries per-call parameters.
type GenerateOptions struct {
	Model       string // Override default model (e.g. heavier model for synthesis)
	Temperature float64
	MaxTokens   int
}

// Provider defines the contract for any text-generation backend.
type Provider interface {
	// Generate submits a single composed prompt and returns the completion.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}
