package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Practice.validate(); err != nil {
		return fmt.Errorf("practice: %w", err)
	}
	return nil
}

func (l *LLMConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Provider)) {
	case "ollama":
		if l.OllamaBaseURL == "" {
			return fmt.Errorf("ollama_base_url is required for provider ollama")
		}
	case "openai":
		if l.OpenAIAPIKey == "" {
			return fmt.Errorf("openai_api_key is required for provider openai")
		}
	case "anthropic":
		if l.AnthropicAPIKey == "" {
			return fmt.Errorf("anthropic_api_key is required for provider anthropic")
		}
	default:
		return fmt.Errorf("unknown provider %q (want ollama, openai, or anthropic)", l.Provider)
	}

	if l.Model == "" {
		return fmt.Errorf("model is required")
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0,2] (got %v)", l.Temperature)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0 (got %v)", l.RequestTimeout)
	}
	if l.ReadyProbeTimeout <= 0 {
		return fmt.Errorf("ready_probe_timeout must be > 0 (got %v)", l.ReadyProbeTimeout)
	}
	return nil
}

func (p *PracticeConfig) validate() error {
	if p.ConfidenceStep <= 0 || p.ConfidenceStep > 1 {
		return fmt.Errorf("confidence_step must be in (0,1] (got %v)", p.ConfidenceStep)
	}
	if p.MaxSessionWords <= 0 {
		return fmt.Errorf("max_session_words must be > 0 (got %d)", p.MaxSessionWords)
	}
	if p.BatchWordCount <= 0 {
		return fmt.Errorf("batch_word_count must be > 0 (got %d)", p.BatchWordCount)
	}
	return nil
}
