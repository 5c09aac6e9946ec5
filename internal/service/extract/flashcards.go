package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// flashcardTemperature is deliberately high so repeated batches vary.
const flashcardTemperature = 0.9

type flashcardPayload struct {
	Word         string `json:"word"`
	PartOfSpeech string `json:"part_of_speech"`
	Translation  string `json:"translation"`
}

// ExtractFlashcards generates count practice words for the language. The
// batch preserves generation order and drops repeated words (first occurrence
// wins); a batch left short only by that deduplication is returned as-is with
// Returned < Requested rather than retried.
func (s *Service) ExtractFlashcards(ctx context.Context, language string, count int) (*domain.FlashcardBatch, error) {
	if strings.TrimSpace(language) == "" {
		return nil, domain.NewValidationError("language", "must not be empty")
	}
	if count < 1 {
		return nil, domain.NewValidationError("count", "must be at least 1")
	}

	messages, seed := flashcardMessages(language, count)
	opts := s.options()
	opts.Temperature = flashcardTemperature
	opts.Seed = seed

	var batch *domain.FlashcardBatch

	parse := func(payload string) *domain.ExtractionError {
		batch = nil

		var parsed any
		if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
			return domain.NewExtractionError(domain.ExtractionMalformed, "parse", "", err)
		}
		if err := validateSchema("flashcards", parsed); err != nil {
			return domain.NewExtractionError(domain.ExtractionIncomplete, "validate", "", err)
		}

		var items []flashcardPayload
		if err := json.Unmarshal([]byte(payload), &items); err != nil {
			return domain.NewExtractionError(domain.ExtractionMalformed, "parse", "", err)
		}

		words := make([]domain.FlashcardWord, 0, len(items))
		for i, item := range items {
			word := strings.TrimSpace(item.Word)
			if word == "" {
				return domain.NewExtractionError(domain.ExtractionIncomplete, "validate", fmt.Sprintf("[%d].word", i), nil)
			}
			translations := domain.SplitTranslations(item.Translation)
			if len(translations) == 0 {
				return domain.NewExtractionError(domain.ExtractionIncomplete, "validate", fmt.Sprintf("[%d].translation", i), nil)
			}

			fw := domain.FlashcardWord{Word: word, Translations: translations}
			if pos, ok := domain.ParsePartOfSpeech(item.PartOfSpeech); ok {
				fw.PartOfSpeech = &pos
			}
			words = append(words, fw)
		}

		// A short generation is a model error worth one correction; a batch
		// shortened below by dedup alone is not.
		if len(words) < count {
			return domain.NewExtractionError(domain.ExtractionCountMismatch, "validate", "",
				fmt.Errorf("got %d items, requested %d", len(words), count))
		}

		seen := make(map[string]bool, len(words))
		deduped := make([]domain.FlashcardWord, 0, count)
		for _, w := range words {
			norm := domain.NormalizeText(w.Word)
			if seen[norm] {
				continue
			}
			seen[norm] = true
			deduped = append(deduped, w)
			if len(deduped) == count {
				break
			}
		}

		batch = &domain.FlashcardBatch{
			Language:  language,
			Words:     deduped,
			Requested: count,
			Returned:  len(deduped),
		}
		return nil
	}

	if err := s.run(ctx, "flashcards", messages, opts, parse); err != nil {
		return nil, err
	}

	return batch, nil
}
