package vocabulary

import (
	"context"
	"fmt"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// Stats returns per-language aggregates plus the overall entry count.
func (s *Service) Stats(ctx context.Context) (domain.VocabularyStats, error) {
	langs, err := s.entries.LanguageStats(ctx)
	if err != nil {
		return domain.VocabularyStats{}, fmt.Errorf("vocabulary stats: %w", err)
	}

	total := 0
	for _, l := range langs {
		total += l.Entries
	}

	return domain.VocabularyStats{
		TotalEntries: total,
		Languages:    langs,
	}, nil
}
