package vocabulary

import (
	"context"
	"fmt"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// Find returns entries matching the filter. Every call re-queries the store,
// so a caller can restart iteration at any time.
func (s *Service) Find(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	if filter.SortBy != "" && !filter.SortBy.IsValid() {
		return nil, domain.NewValidationError("sort_by", "unknown sort key")
	}

	entries, err := s.entries.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}

	return entries, nil
}

// RecordReview records one practice outcome for the entry: increments the
// review counter, stamps the review time, and moves the confidence score one
// configured step toward 1 (correct) or 0 (incorrect).
func (s *Service) RecordReview(ctx context.Context, word, language string, wasCorrect bool) (domain.Entry, error) {
	updated, err := s.entries.RecordReview(ctx, domain.NormalizeText(word), language, wasCorrect, s.step)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("record review: %w", err)
	}
	return updated, nil
}
