package summary

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type openAIClient struct {
	client *openai.Client
	model  string
}

func newOpenAIClient(key, model, baseURL string, httpClient *http.Client) *openAIClient {
	config := openai.DefaultConfig(key)
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}
	config.HTTPClient = httpClient
	return &openAIClient{client: openai.NewClientWithConfig(config), model: model}
}

func (c *openAIClient) Name() string {
	return fmt.Sprintf("OpenAI (%s)", c.model)
}

func (c *openAIClient) Summarize(ctx context.Context, text string) (string, error) {
	text = clipText(text, maxSummaryChars)
	if text == "" {
		return "", fmt.Errorf("text empty; cannot summarize")
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a concise reading assistant."},
			{Role: openai.ChatMessageRoleUser, Content: buildSummaryPrompt(text)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai API returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
