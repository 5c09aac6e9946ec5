package domain

// EnrichmentResult is the ephemeral product of extracting vocabulary metadata
// from model output. It is not persisted until explicitly accepted into an
// Entry.
type EnrichmentResult struct {
	Word         string
	Language     string
	Translation  string
	PartOfSpeech *PartOfSpeech
	// RawPartOfSpeech keeps the model's tag verbatim when it falls outside
	// the closed PartOfSpeech set. POSFlagged is set in that case.
	RawPartOfSpeech string
	POSFlagged      bool
	ExampleSentence string
	Pronunciation   string
	Gender          string
	Notes           string
}

// FlashcardWord is one generated practice item: a target-language word with
// its accepted translations.
type FlashcardWord struct {
	Word         string
	Translations []string
	PartOfSpeech *PartOfSpeech
}

// FlashcardBatch is an ordered, deduplicated set of generated flashcard
// words. Returned may be lower than Requested when deduplication dropped
// repeats; that is a short-count result the caller may top up, not an error.
type FlashcardBatch struct {
	Language  string
	Words     []FlashcardWord
	Requested int
	Returned  int
}

// ShortCount reports whether deduplication left the batch under the
// requested size.
func (b *FlashcardBatch) ShortCount() bool {
	return b.Returned < b.Requested
}
