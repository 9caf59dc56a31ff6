package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// the Messages API requires an explicit output budget
const defaultAnthropicMaxTokens = 1024

// AnthropicGenerator drives an Anthropic Messages API endpoint.
type AnthropicGenerator struct {
	client       anthropic.Client
	model        string
	maxTokens    int64
	systemPrompt string
}

// NewAnthropicGenerator creates a generator with SDK retries disabled.
func NewAnthropicGenerator(apiKey, baseURL, model string, maxTokens int64, systemPrompt string) *AnthropicGenerator {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}

	return &AnthropicGenerator{
		client:       anthropic.NewClient(opts...),
		model:        model,
		maxTokens:    maxTokens,
		systemPrompt: systemPrompt,
	}
}

// Verify checks that the endpoint serves the configured model.
func (g *AnthropicGenerator) Verify(ctx context.Context) error {
	if _, err := g.client.Models.Get(ctx, g.model, anthropic.ModelGetParams{}); err != nil {
		return fmt.Errorf("load model %s: %w", g.model, err)
	}
	return nil
}

func (g *AnthropicGenerator) Generate(ctx context.Context, input Input) (string, error) {
	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: renderPrompt(g.systemPrompt, input)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(input.Text)),
		},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", ErrEmptyGeneration
	}
	return out.String(), nil
}
