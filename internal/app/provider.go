package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/langtutor-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/langtutor-backend/internal/adapter/provider/ollama"
	"github.com/heartmarshall/langtutor-backend/internal/adapter/provider/openai"
	"github.com/heartmarshall/langtutor-backend/internal/config"
	"github.com/heartmarshall/langtutor-backend/internal/provider"
)

const rateLimitCleanupInterval = 5 * time.Minute

// newGenerator selects the inference gateway adapter named by the
// configuration. Config validation has already ensured the chosen provider
// has its credentials set.
func newGenerator(logger *slog.Logger, cfg config.LLMConfig) (provider.Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "ollama":
		return ollama.NewClient(logger,
			ollama.WithBaseURL(cfg.OllamaBaseURL),
			ollama.WithTimeout(cfg.RequestTimeout),
			ollama.WithReadyProbeTimeout(cfg.ReadyProbeTimeout),
		), nil
	case "openai":
		return openai.NewClient(logger, cfg.OpenAIAPIKey, "", cfg.Model)
	case "anthropic":
		return anthropic.NewClient(logger, cfg.AnthropicAPIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
