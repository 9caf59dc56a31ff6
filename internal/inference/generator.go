//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package inference

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Generator is the opaque sequence-to-sequence model: it turns a prepared
// input into raw model output that still needs decoding.
type Generator interface {
	Generate(ctx context.Context, input Input) (string, error)
}

// NewGenerator builds the generator named by the manifest. Verification that
// the model is reachable happens here so a broken artifact fails startup.
func NewGenerator(ctx context.Context, cfg GeneratorConfig) (Generator, error) {
	apiKey := ""
	if cfg.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
	}

	var (
		generator Generator
		verify    func(context.Context) error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case GeneratorOpenAI:
		g := NewOpenAIGenerator(apiKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens, cfg.SystemPrompt)
		generator, verify = g, g.Verify
	case GeneratorAnthropic:
		g := NewAnthropicGenerator(apiKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens, cfg.SystemPrompt)
		generator, verify = g, g.Verify
	default:
		return nil, fmt.Errorf("%w: unknown generator kind %q", ErrInvalidManifest, cfg.Kind)
	}

	if !cfg.SkipVerify {
		if err := verify(ctx); err != nil {
			return nil, err
		}
	}
	return generator, nil
}
