// Package anthropic implements the inference gateway against the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/langtutor-backend/internal/provider"
)

const defaultMaxTokens = 1024

// Client adapts the Anthropic Messages API to the Generator contract.
type Client struct {
	api   anthropicsdk.Client
	model string
	log   *slog.Logger
}

// NewClient creates an Anthropic gateway client.
func NewClient(logger *slog.Logger, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}

	return &Client{
		api:   anthropicsdk.NewClient(option.WithAPIKey(apiKey)),
		model: model,
		log:   logger.With("adapter", "anthropic"),
	}, nil
}

// Generate sends a single-turn prompt.
func (c *Client) Generate(ctx context.Context, prompt string, opts provider.Options) (string, error) {
	return c.Chat(ctx, []provider.Message{{Role: provider.RoleUser, Content: prompt}}, opts)
}

// Chat sends a conversation and returns the concatenated text blocks of the
// reply.
func (c *Client) Chat(ctx context.Context, messages []provider.Message, opts provider.Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}
	maxTokens := int64(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(model),
		MaxTokens: maxTokens,
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropicsdk.Float(opts.Temperature)
	}

	system := systemPrompt(messages, opts)
	if system != "" {
		params.System = []anthropicsdk.TextBlockParam{{Text: system}}
	}

	for _, m := range messages {
		switch m.Role {
		case provider.RoleAssistant:
			params.Messages = append(params.Messages, anthropicsdk.NewAssistantMessage(anthropicsdk.NewTextBlock(m.Content)))
		case provider.RoleSystem:
			// folded into params.System above
		default:
			params.Messages = append(params.Messages, anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(m.Content)))
		}
	}

	resp, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return "", provider.NewGatewayError("anthropic", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// IsReady reports whether the client is configured. The Messages API has no
// model load state to probe.
func (c *Client) IsReady(ctx context.Context, model string) bool {
	return true
}

// ListModels returns the configured model identifier.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	return []string{c.model}, nil
}

func systemPrompt(messages []provider.Message, opts provider.Options) string {
	var parts []string
	if opts.TargetLanguage != "" {
		parts = append(parts, fmt.Sprintf("You must respond only in %s. Never use any other language regardless of the input language.", opts.TargetLanguage))
	}
	for _, m := range messages {
		if m.Role == provider.RoleSystem {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}
