package process

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIServer(t *testing.T, handler http.HandlerFunc) *openai.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return openai.NewClientWithConfig(cfg)
}

func TestOpenAISummarizer(t *testing.T) {
	var req openai.ChatCompletionRequest
	client := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4","choices":[{"index":0,"message":{"role":"assistant","content":"five insights"},"finish_reason":"stop"}],"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`)
	})

	sum := NewOpenAISummarizer(client, OpenAIConfig{MaxTokens: 700, Temperature: 0.7})
	act, err := sum.Summarize(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "five insights", act)

	assert.Equal(t, openai.GPT4, req.Model)
	assert.Equal(t, 700, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 0.0001)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[0].Role)
	assert.Equal(t, "the prompt", req.Messages[0].Content)
}

func TestOpenAISummarizerErrors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		client := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)
		})

		_, err := NewOpenAISummarizer(client, OpenAIConfig{}).Summarize(context.Background(), "p")
		assert.Error(t, err)
	})

	t.Run("no choices", func(t *testing.T) {
		client := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":"x","object":"chat.completion","created":1,"model":"gpt-4","choices":[]}`)
		})

		_, err := NewOpenAISummarizer(client, OpenAIConfig{}).Summarize(context.Background(), "p")
		assert.ErrorIs(t, err, ErrEmptyOutput)
	})
}
