package domain

// EntryFilter contains filtering/pagination parameters for Find.
// The zero value means "everything, most recent first".
type EntryFilter struct {
	// Language restricts results to one target language. nil = all.
	Language *string

	// Search performs a case-insensitive substring match over both the word
	// and the translation. nil or empty = no text filter.
	Search *string

	SortBy   EntrySortKey
	SortDesc bool
	Limit    int
	Offset   int
}
