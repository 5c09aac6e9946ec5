package vocabulary

import (
	"strings"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// AddInput carries a new entry. Word, Language, and Translation are required;
// the rest is optional metadata, typically from an enrichment result.
type AddInput struct {
	Word            string
	Language        string
	Translation     string
	PartOfSpeech    *domain.PartOfSpeech
	ExampleSentence *string
	Notes           *string
}

// Validate checks required fields and collects all failures.
func (in AddInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(in.Word) == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}
	if strings.TrimSpace(in.Language) == "" {
		errs = append(errs, domain.FieldError{Field: "language", Message: "required"})
	}
	if strings.TrimSpace(in.Translation) == "" {
		errs = append(errs, domain.FieldError{Field: "translation", Message: "required"})
	}
	if in.PartOfSpeech != nil && !in.PartOfSpeech.IsValid() {
		errs = append(errs, domain.FieldError{Field: "part_of_speech", Message: "unknown value"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
