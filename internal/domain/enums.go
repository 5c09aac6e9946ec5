package domain

// PartOfSpeech represents the grammatical category of a word.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "NOUN"
	PartOfSpeechVerb         PartOfSpeech = "VERB"
	PartOfSpeechAdjective    PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb       PartOfSpeech = "ADVERB"
	PartOfSpeechPronoun      PartOfSpeech = "PRONOUN"
	PartOfSpeechPreposition  PartOfSpeech = "PREPOSITION"
	PartOfSpeechConjunction  PartOfSpeech = "CONJUNCTION"
	PartOfSpeechInterjection PartOfSpeech = "INTERJECTION"
	PartOfSpeechPhrase       PartOfSpeech = "PHRASE"
	PartOfSpeechOther        PartOfSpeech = "OTHER"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPronoun, PartOfSpeechPreposition, PartOfSpeechConjunction,
		PartOfSpeechInterjection, PartOfSpeechPhrase, PartOfSpeechOther:
		return true
	}
	return false
}

// ParsePartOfSpeech maps a free-form tag ("noun", "Verb ", "adj.") to the
// closed PartOfSpeech set. Unrecognized values return ok=false; callers keep
// the raw tag and flag it rather than rejecting the record.
func ParsePartOfSpeech(raw string) (PartOfSpeech, bool) {
	switch NormalizeText(raw) {
	case "noun", "n", "n.":
		return PartOfSpeechNoun, true
	case "verb", "v", "v.":
		return PartOfSpeechVerb, true
	case "adjective", "adj", "adj.":
		return PartOfSpeechAdjective, true
	case "adverb", "adv", "adv.":
		return PartOfSpeechAdverb, true
	case "pronoun":
		return PartOfSpeechPronoun, true
	case "preposition", "prep", "prep.":
		return PartOfSpeechPreposition, true
	case "conjunction", "conj", "conj.":
		return PartOfSpeechConjunction, true
	case "interjection":
		return PartOfSpeechInterjection, true
	case "phrase", "expression":
		return PartOfSpeechPhrase, true
	case "other":
		return PartOfSpeechOther, true
	}
	return "", false
}

// SessionState represents the lifecycle state of a flashcard session.
type SessionState string

const (
	SessionStateNotStarted SessionState = "NOT_STARTED"
	SessionStateInProgress SessionState = "IN_PROGRESS"
	SessionStateCompleted  SessionState = "COMPLETED"
)

func (s SessionState) String() string { return string(s) }

func (s SessionState) IsValid() bool {
	switch s {
	case SessionStateNotStarted, SessionStateInProgress, SessionStateCompleted:
		return true
	}
	return false
}

// Outcome records how a single flashcard item was answered.
type Outcome string

const (
	OutcomeUnanswered Outcome = "UNANSWERED"
	OutcomeCorrect    Outcome = "CORRECT"
	OutcomeIncorrect  Outcome = "INCORRECT"
)

func (o Outcome) String() string { return string(o) }

// EntrySortKey selects the ordering of Find results.
type EntrySortKey string

const (
	SortByDateAdded     EntrySortKey = "date_added"
	SortByWord          EntrySortKey = "word"
	SortByTimesReviewed EntrySortKey = "times_reviewed"
)

func (k EntrySortKey) IsValid() bool {
	switch k {
	case SortByDateAdded, SortByWord, SortByTimesReviewed:
		return true
	}
	return false
}
