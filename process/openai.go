package process

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type OpenAIConfig struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

type OpenAISummarizer struct {
	client *openai.Client
	config OpenAIConfig
}

func NewOpenAISummarizer(client *openai.Client, config OpenAIConfig) *OpenAISummarizer {
	if config.Model == "" {
		config.Model = openai.GPT4
	}
	return &OpenAISummarizer{
		client: client,
		config: config,
	}
}

func (sum *OpenAISummarizer) Name() string {
	return "openai"
}

func (sum *OpenAISummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := sum.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       sum.config.Model,
			MaxTokens:   sum.config.MaxTokens,
			Temperature: sum.config.Temperature,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to fetch completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyOutput
	}

	return resp.Choices[0].Message.Content, nil
}
