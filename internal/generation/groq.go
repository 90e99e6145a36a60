package generation

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Groq exposes an OpenAI-compatible API, so the provider reuses the OpenAI
// client with a custom base URL.
const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	DefaultGroqModel = "mixtral-8x7b-32768"
)

// GroqProvider is the fast first-choice letter generator
type GroqProvider struct {
	client *openai.Client
	model  string
}

// NewGroqProvider creates a Groq provider. An empty API key yields a
// provider that reports Unconfigured on every call so it can sit in the
// chain without credentials.
func NewGroqProvider(apiKey, model string) *GroqProvider {
	if model == "" {
		model = DefaultGroqModel
	}
	p := &GroqProvider{model: model}
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = groqBaseURL
		p.client = openai.NewClientWithConfig(cfg)
	}
	return p
}

// Name implements ContentProvider
func (p *GroqProvider) Name() string { return "groq" }

// Generate implements ContentProvider
func (p *GroqProvider) Generate(ctx context.Context, req Request) (string, error) {
	if p.client == nil {
		return "", errUnconfigured(p.Name())
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.7,
		MaxTokens:   2000,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("groq chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
