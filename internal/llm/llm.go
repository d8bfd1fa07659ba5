// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm abstracts the text-completion capability behind a narrow
// interface with one swappable implementation per provider. Callers treat
// completion as opaque: a system instruction and user content in, free-form
// text out, with failure always possible.
package llm

import (
	"context"
	"fmt"

	"github.com/pdiddy/equity-scout/pkg/types"
)

// Completer generates a text completion. Implementations honor the context
// deadline and return an error rather than blocking past it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// NewCompleter returns the backend selected by cfg.Provider.
func NewCompleter(cfg types.AIConfig) (Completer, error) {
	switch cfg.Provider {
	case "", "claude":
		return &ClaudeBackend{
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}, nil
	case "gemini":
		return &GeminiBackend{
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}, nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}
