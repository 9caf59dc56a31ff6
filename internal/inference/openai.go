package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultSystemPrompt = `You are a machine translation model. Translate the user's text from {source} to {target}.
Respond with the translation only. Do not explain, do not add quotes, do not repeat the source text.`

// placeholder key for local OpenAI-compatible servers that ignore authentication
const noAPIKey = "sk-no-key-required"

var ErrEmptyGeneration = errors.New("model returned no output")

// OpenAIGenerator drives any OpenAI-compatible chat completion endpoint.
type OpenAIGenerator struct {
	client       openai.Client
	model        string
	maxTokens    int64
	systemPrompt string
}

// NewOpenAIGenerator creates a generator. The SDK's own retries are disabled:
// a failed generation surfaces to the caller as is.
func NewOpenAIGenerator(apiKey, baseURL, model string, maxTokens int64, systemPrompt string) *OpenAIGenerator {
	if apiKey == "" {
		apiKey = noAPIKey
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}

	return &OpenAIGenerator{
		client:       openai.NewClient(opts...),
		model:        model,
		maxTokens:    maxTokens,
		systemPrompt: systemPrompt,
	}
}

// Verify checks that the endpoint serves the configured model.
func (g *OpenAIGenerator) Verify(ctx context.Context) error {
	if _, err := g.client.Models.Get(ctx, g.model); err != nil {
		return fmt.Errorf("load model %s: %w", g.model, err)
	}
	return nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, input Input) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(renderPrompt(g.systemPrompt, input)),
			openai.UserMessage(input.Text),
		},
		// greedy decoding, same input gives the same output
		Temperature: openai.Float(0),
	}
	if g.maxTokens > 0 {
		params.MaxTokens = openai.Int(g.maxTokens)
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyGeneration
	}
	return resp.Choices[0].Message.Content, nil
}

func renderPrompt(template string, input Input) string {
	return strings.NewReplacer(
		"{source}", input.SourceName,
		"{target}", input.TargetName,
		"{source_code}", input.SourceCode,
		"{target_code}", input.TargetCode,
	).Replace(template)
}
