// Package ollama implements the inference gateway against a local Ollama
// server. It speaks /api/chat for generation, /api/tags for model listing,
// and probes readiness with a one-token /api/generate call.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/langtutor-backend/internal/provider"
)

const defaultBaseURL = "http://localhost:11434"

// Client talks to an Ollama server. It performs no retries: a failed call is
// classified into a provider.GatewayError and returned as-is.
type Client struct {
	baseURL           string
	httpClient        *http.Client
	readyProbeTimeout time.Duration
	log               *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Ollama server address (used in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout bounds each generation request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithReadyProbeTimeout bounds the IsReady probe.
func WithReadyProbeTimeout(d time.Duration) Option {
	return func(c *Client) { c.readyProbeTimeout = d }
}

// NewClient creates an Ollama gateway client.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:           defaultBaseURL,
		httpClient:        &http.Client{Timeout: 60 * time.Second},
		readyProbeTimeout: 5 * time.Second,
		log:               logger.With("adapter", "ollama"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate sends a single-turn prompt and returns the raw response text.
func (c *Client) Generate(ctx context.Context, prompt string, opts provider.Options) (string, error) {
	return c.Chat(ctx, []provider.Message{{Role: provider.RoleUser, Content: prompt}}, opts)
}

// Chat sends a conversation to /api/chat (non-streaming) and returns the
// assistant message content.
func (c *Client) Chat(ctx context.Context, messages []provider.Message, opts provider.Options) (string, error) {
	req := chatRequest{
		Model:    opts.Model,
		Messages: toAPIMessages(messages, opts.TargetLanguage),
		Stream:   false,
		Options:  toAPIOptions(opts),
	}
	if opts.JSONOnly {
		req.Format = "json"
	}

	body, err := c.post(ctx, "/api/chat", req)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("ollama: decode chat response: %w", err)
	}

	c.log.DebugContext(ctx, "chat completed",
		slog.String("model", opts.Model),
		slog.Int("eval_count", resp.EvalCount),
	)

	return resp.Message.Content, nil
}

// ChatStream sends a conversation to /api/chat with streaming enabled and
// delivers each content chunk to fn. It returns the assembled full response.
func (c *Client) ChatStream(ctx context.Context, messages []provider.Message, opts provider.Options, fn func(chunk string)) (string, error) {
	req := chatRequest{
		Model:    opts.Model,
		Messages: toAPIMessages(messages, opts.TargetLanguage),
		Stream:   true,
		Options:  toAPIOptions(opts),
	}

	httpReq, err := c.newRequest(ctx, "/api/chat", req)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", provider.NewGatewayError("ollama", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", provider.NewStatusError("ollama", resp.StatusCode)
	}

	var full bytes.Buffer
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk chatResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			// Skip malformed NDJSON lines the way the server occasionally
			// interleaves keep-alive noise.
			continue
		}
		if chunk.Message.Content != "" {
			full.WriteString(chunk.Message.Content)
			if fn != nil {
				fn(chunk.Message.Content)
			}
		}
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", provider.NewGatewayError("ollama", err)
	}

	return full.String(), nil
}

// IsReady reports whether the model is loaded by issuing a one-token
// generation. The probe is bounded by the ready-probe timeout regardless of
// the parent context.
func (c *Client) IsReady(ctx context.Context, model string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.readyProbeTimeout)
	defer cancel()

	req := generateRequest{
		Model:   model,
		Prompt:  "test",
		Stream:  false,
		Options: apiOptions{NumPredict: 1},
	}

	if _, err := c.post(ctx, "/api/generate", req); err != nil {
		c.log.DebugContext(ctx, "ready probe failed",
			slog.String("model", model),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// ListModels returns the names of locally available models from /api/tags.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama: create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, provider.NewGatewayError("ollama", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, provider.NewStatusError("ollama", resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("ollama: decode tags response: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func (c *Client) newRequest(ctx context.Context, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	req, err := c.newRequest(ctx, path, payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.NewGatewayError("ollama", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, provider.NewStatusError("ollama", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.NewGatewayError("ollama", err)
	}
	return body, nil
}
