package generation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiProvider generates letters through the Gemini API. The client is
// created lazily on first use so an unconfigured provider can sit in the
// chain without credentials.
type GeminiProvider struct {
	apiKey string
	model  string

	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGeminiProvider creates a Gemini provider. An empty API key yields a
// provider that reports Unconfigured on every call.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{apiKey: apiKey, model: model}
}

// Name implements ContentProvider
func (p *GeminiProvider) Name() string { return "gemini" }

// Generate implements ContentProvider
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	if p.apiKey == "" {
		return "", errUnconfigured(p.Name())
	}

	p.once.Do(func() {
		p.client, p.initErr = genai.NewClient(context.Background(), option.WithAPIKey(p.apiKey))
	})
	if p.initErr != nil {
		return "", fmt.Errorf("gemini client: %w", p.initErr)
	}

	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0.7)

	resp, err := model.GenerateContent(ctx, genai.Text(systemPrompt+"\n\n"+buildPrompt(req)))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini generate content: empty response")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini generate content: no text parts in response")
	}
	return b.String(), nil
}
