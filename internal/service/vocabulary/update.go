package vocabulary

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// Update applies a partial update to the entry identified by (word, language).
// The identity itself cannot change; an empty patch returns the entry as-is.
func (s *Service) Update(ctx context.Context, word, language string, patch domain.EntryPatch) (domain.Entry, error) {
	if patch.Translation != nil && strings.TrimSpace(*patch.Translation) == "" {
		return domain.Entry{}, domain.NewValidationError("translation", "must not be empty")
	}
	if patch.PartOfSpeech != nil && !patch.PartOfSpeech.IsValid() {
		return domain.Entry{}, domain.NewValidationError("part_of_speech", "unknown value")
	}

	updated, err := s.entries.Update(ctx, domain.NormalizeText(word), language, patch)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("update entry: %w", err)
	}

	return updated, nil
}

// Remove hard-deletes the entry identified by (word, language).
func (s *Service) Remove(ctx context.Context, word, language string) error {
	if err := s.entries.Delete(ctx, domain.NormalizeText(word), language); err != nil {
		return fmt.Errorf("remove entry: %w", err)
	}
	return nil
}
