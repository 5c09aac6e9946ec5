package domain

// LanguageStat holds per-language aggregates for the vocabulary stats view.
type LanguageStat struct {
	Language      string
	Entries       int
	AvgReviews    float64
	AvgConfidence float64
}

// VocabularyStats summarizes the whole store.
type VocabularyStats struct {
	TotalEntries int
	Languages    []LanguageStat
}
