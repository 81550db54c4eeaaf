package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client for OpenAI-compatible chat completion APIs.
// It serves the openai, anthropic and proxy providers.
type OpenAIClient struct {
	client   *openai.Client
	provider Provider
	model    string
}

// NewOpenAIClient creates a client against cfg.BaseURL, or the OpenAI API
// when it is empty.
func NewOpenAIClient(cfg *Config) (*OpenAIClient, error) {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client:   openai.NewClientWithConfig(clientCfg),
		provider: cfg.Provider,
		model:    cfg.Model,
	}, nil
}

// Chat sends prompt as a single user message.
func (c *OpenAIClient) Chat(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &APICallError{Provider: c.provider, Message: "chat completion failed", Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", &APICallError{Provider: c.provider, Message: "no choices in response"}
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Close is a no-op; the HTTP client holds no per-client resources.
func (c *OpenAIClient) Close() error {
	return nil
}
