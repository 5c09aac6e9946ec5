package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

type enrichmentPayload struct {
	Translation       string `json:"translation"`
	PartOfSpeech      string `json:"part_of_speech"`
	ExampleSentence   string `json:"example_sentence"`
	PronunciationHint string `json:"pronunciation_hint"`
	Gender            string `json:"gender"`
	Notes             string `json:"notes"`
}

// ExtractEnrichment asks the model for metadata about a single word and
// validates the reply. A part of speech outside the recognized set is kept
// verbatim and flagged rather than rejected.
func (s *Service) ExtractEnrichment(ctx context.Context, word, language string) (*domain.EnrichmentResult, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, domain.NewValidationError("word", "must not be empty")
	}
	if strings.TrimSpace(language) == "" {
		return nil, domain.NewValidationError("language", "must not be empty")
	}

	var result *domain.EnrichmentResult

	parse := func(payload string) *domain.ExtractionError {
		result = nil

		var parsed any
		if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
			return domain.NewExtractionError(domain.ExtractionMalformed, "parse", "", err)
		}
		if err := validateSchema("enrichment", parsed); err != nil {
			return domain.NewExtractionError(domain.ExtractionIncomplete, "validate", "", err)
		}

		var p enrichmentPayload
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return domain.NewExtractionError(domain.ExtractionMalformed, "parse", "", err)
		}

		if strings.TrimSpace(p.Translation) == "" {
			return domain.NewExtractionError(domain.ExtractionIncomplete, "validate", "translation", nil)
		}

		r := &domain.EnrichmentResult{
			Word:            word,
			Language:        language,
			Translation:     strings.TrimSpace(p.Translation),
			ExampleSentence: strings.TrimSpace(p.ExampleSentence),
			Pronunciation:   strings.TrimSpace(p.PronunciationHint),
			Gender:          strings.TrimSpace(p.Gender),
			Notes:           strings.TrimSpace(p.Notes),
		}

		if pos, ok := domain.ParsePartOfSpeech(p.PartOfSpeech); ok {
			r.PartOfSpeech = &pos
		} else {
			r.RawPartOfSpeech = strings.TrimSpace(p.PartOfSpeech)
			r.POSFlagged = true
		}

		result = r
		return nil
	}

	if err := s.run(ctx, "enrichment", enrichmentMessages(word, language), s.options(), parse); err != nil {
		return nil, err
	}

	return result, nil
}
