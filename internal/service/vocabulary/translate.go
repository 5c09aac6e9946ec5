package vocabulary

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
	"github.com/heartmarshall/langtutor-backend/internal/provider"
)

const translateSystem = "You are a professional translator. Translate the given text to English accurately and naturally. Respond only with the English translation, no explanations or additional text."

// Translate renders text from the source language into English. The reply is
// free text, so only whitespace trimming is applied.
func (s *Service) Translate(ctx context.Context, text, sourceLanguage string) (string, error) {
	if s.gen == nil {
		return "", fmt.Errorf("translate: no gateway configured")
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.NewValidationError("text", "must not be empty")
	}

	messages := []provider.Message{
		{Role: provider.RoleSystem, Content: translateSystem},
		{Role: provider.RoleUser, Content: fmt.Sprintf("Translate this %s text to English: %s", sourceLanguage, text)},
	}

	reply, err := s.gen.Chat(ctx, messages, provider.Options{
		Model:     s.llm.Model,
		MaxTokens: s.llm.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}

	return strings.TrimSpace(reply), nil
}
