// Package openai implements the inference gateway against the OpenAI API
// (and OpenAI-compatible endpoints) for cloud models.
package openai

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/langtutor-backend/internal/provider"
)

// Client adapts the OpenAI chat completion API to the Generator contract.
type Client struct {
	api   *openai.Client
	model string
	log   *slog.Logger
}

// NewClient creates an OpenAI gateway client. baseURL may be empty for the
// default endpoint.
func NewClient(logger *slog.Logger, apiKey, baseURL, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
		log:   logger.With("adapter", "openai"),
	}, nil
}

// Generate sends a single-turn prompt.
func (c *Client) Generate(ctx context.Context, prompt string, opts provider.Options) (string, error) {
	return c.Chat(ctx, []provider.Message{{Role: provider.RoleUser, Content: prompt}}, opts)
}

// Chat sends a conversation and returns the first choice's content.
func (c *Client) Chat(ctx context.Context, messages []provider.Message, opts provider.Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}

	req := openai.ChatCompletionRequest{
		Model:               model,
		Messages:            buildMessages(messages, opts.TargetLanguage),
		MaxCompletionTokens: opts.MaxTokens,
		Temperature:         float32(opts.Temperature),
	}
	if opts.JSONOnly {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", provider.NewGatewayError("openai", err)
	}
	if len(resp.Choices) == 0 {
		return "", provider.NewStatusError("openai", 0)
	}

	return resp.Choices[0].Message.Content, nil
}

// IsReady reports whether the client is configured. A cloud API has no load
// probe; key presence is the readiness signal.
func (c *Client) IsReady(ctx context.Context, model string) bool {
	return c.api != nil
}

// ListModels returns the configured model identifier. Enumerating the full
// cloud catalog is noise for a local tutor setup.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	return []string{c.model}, nil
}

func buildMessages(messages []provider.Message, targetLanguage string) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if targetLanguage != "" {
		out = append(out, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf("You must respond only in %s. Never use any other language regardless of the input language.", targetLanguage),
		})
	}
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case provider.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		case provider.RoleSystem:
			role = openai.ChatMessageRoleSystem
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
