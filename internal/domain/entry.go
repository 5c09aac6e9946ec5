package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is a single persisted vocabulary record, identified by its
// (word, language) pair. Word and language are immutable after creation;
// the review fields (TimesReviewed, LastReviewed, ConfidenceScore) are
// mutated only by the practice review path.
type Entry struct {
	ID              uuid.UUID
	Word            string
	WordNormalized  string
	Language        string
	Translation     string
	PartOfSpeech    *PartOfSpeech
	ExampleSentence *string
	Notes           *string
	DateAdded       time.Time
	TimesReviewed   int
	LastReviewed    *time.Time
	ConfidenceScore float64
}

// AcceptedTranslations splits the translation field into the set of answers
// accepted during practice. Variants are separated by commas, semicolons,
// or slashes: "to eat; to dine" accepts both forms.
func (e *Entry) AcceptedTranslations() []string {
	return SplitTranslations(e.Translation)
}

// SplitTranslations splits a translation string on commas, semicolons, and
// slashes, dropping empty parts.
func SplitTranslations(translation string) []string {
	split := strings.FieldsFunc(translation, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	})

	out := make([]string, 0, len(split))
	for _, s := range split {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EntryPatch describes a partial update of an entry. Nil fields are left
// unchanged. The (word, language) identity cannot be patched.
type EntryPatch struct {
	Translation     *string
	PartOfSpeech    *PartOfSpeech
	ExampleSentence *string
	Notes           *string
}

// IsEmpty reports whether the patch changes nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.Translation == nil && p.PartOfSpeech == nil &&
		p.ExampleSentence == nil && p.Notes == nil
}
