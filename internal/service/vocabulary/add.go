package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// Add validates and inserts a new entry. A duplicate (word, language) pair
// surfaces domain.ErrAlreadyExists so the caller can choose update-or-skip;
// the unique constraint resolves concurrent inserts of the same pair.
func (s *Service) Add(ctx context.Context, in AddInput) (domain.Entry, error) {
	if err := in.Validate(); err != nil {
		return domain.Entry{}, err
	}

	word := strings.TrimSpace(in.Word)
	entry := domain.Entry{
		Word:            word,
		WordNormalized:  domain.NormalizeText(word),
		Language:        strings.TrimSpace(in.Language),
		Translation:     strings.TrimSpace(in.Translation),
		PartOfSpeech:    in.PartOfSpeech,
		ExampleSentence: in.ExampleSentence,
		Notes:           in.Notes,
	}

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("add entry: %w", err)
	}

	s.log.InfoContext(ctx, "entry added",
		slog.String("word", created.WordNormalized),
		slog.String("language", created.Language),
	)

	return created, nil
}

// Get returns the entry identified by (word, language).
func (s *Service) Get(ctx context.Context, word, language string) (domain.Entry, error) {
	return s.entries.GetByWord(ctx, domain.NormalizeText(word), language)
}
