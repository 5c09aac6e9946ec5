package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedEntry inserts a vocabulary entry with a unique word for the given
// language and returns a filled domain.Entry.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, language string) domain.Entry {
	t.Helper()

	suffix := uniqueSuffix()
	return SeedEntryWord(t, pool, "word-"+suffix, language, "translation-"+suffix)
}

// SeedEntryWord inserts a vocabulary entry with the given word, language, and
// translation. Fails the test on conflict.
func SeedEntryWord(t *testing.T, pool *pgxpool.Pool, word, language, translation string) domain.Entry {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	entry := domain.Entry{
		ID:             uuid.New(),
		Word:           word,
		WordNormalized: domain.NormalizeText(word),
		Language:       language,
		Translation:    translation,
		DateAdded:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO vocabulary (id, word, word_normalized, language, translation, date_added)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.Word, entry.WordNormalized, entry.Language, entry.Translation, entry.DateAdded,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEntryWord insert: %v", err)
	}

	return entry
}

// SeedReviewedEntry inserts an entry with review history already recorded.
func SeedReviewedEntry(t *testing.T, pool *pgxpool.Pool, language string, timesReviewed int, confidence float64) domain.Entry {
	t.Helper()
	ctx := context.Background()

	entry := SeedEntry(t, pool, language)

	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err := pool.Exec(ctx,
		`UPDATE vocabulary
		 SET times_reviewed = $2, last_reviewed = $3, confidence_score = $4
		 WHERE id = $1`,
		entry.ID, timesReviewed, now, confidence,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReviewedEntry update: %v", err)
	}

	entry.TimesReviewed = timesReviewed
	entry.LastReviewed = &now
	entry.ConfidenceScore = confidence
	return entry
}
