package process

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
}

type GeminiSummarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiSummarizer(ctx context.Context, config GeminiConfig) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	name := config.Model
	if name == "" {
		name = "gemini-1.5-flash"
	}
	model := client.GenerativeModel(name)
	model.SetTemperature(config.Temperature)
	if config.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(config.MaxTokens))
	}

	return &GeminiSummarizer{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiSummarizer) Name() string {
	return "gemini"
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return extractText(resp), nil
}

func (g *GeminiSummarizer) Close() error {
	return g.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}
