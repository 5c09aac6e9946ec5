// Package vocabulary implements the vocabulary entry repository using
// PostgreSQL. Fixed-shape queries use raw SQL; the dynamic search query is
// built with squirrel.
package vocabulary

import (
	"context"
	"fmt"
	"iter"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/langtutor-backend/internal/adapter/postgres"
	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// Repo provides vocabulary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vocabulary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const entryColumns = `id, word, word_normalized, language, translation, part_of_speech,
       example_sentence, notes, date_added, times_reviewed, last_reviewed, confidence_score`

const createSQL = `
INSERT INTO vocabulary (id, word, word_normalized, language, translation, part_of_speech,
                        example_sentence, notes, date_added)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + entryColumns

const restoreSQL = `
INSERT INTO vocabulary (id, word, word_normalized, language, translation, part_of_speech,
                        example_sentence, notes, date_added, times_reviewed, last_reviewed,
                        confidence_score)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + entryColumns

const getByIDSQL = `
SELECT ` + entryColumns + `
FROM vocabulary
WHERE id = $1`

const getByWordSQL = `
SELECT ` + entryColumns + `
FROM vocabulary
WHERE word_normalized = $1 AND language = $2`

const deleteSQL = `
DELETE FROM vocabulary
WHERE word_normalized = $1 AND language = $2`

// recordReviewSQL applies the review in one statement so concurrent reviews
// serialize on the row lock. The score moves toward 1 on a correct answer and
// toward 0 on an incorrect one, clamped to [0, 1].
const recordReviewSQL = `
UPDATE vocabulary
SET times_reviewed   = times_reviewed + 1,
    last_reviewed    = now(),
    confidence_score = LEAST(1.0, GREATEST(0.0,
        CASE WHEN $3 THEN confidence_score + (1.0 - confidence_score) * $4
             ELSE confidence_score - confidence_score * $4
        END))
WHERE word_normalized = $1 AND language = $2
RETURNING ` + entryColumns

const sampleByLanguageSQL = `
SELECT ` + entryColumns + `
FROM vocabulary
WHERE language = $1
ORDER BY random()
LIMIT $2`

const countByLanguageSQL = `
SELECT count(*)
FROM vocabulary
WHERE language = $1`

const languageStatsSQL = `
SELECT language, count(*), avg(times_reviewed), avg(confidence_score)
FROM vocabulary
GROUP BY language
ORDER BY language`

const allSQL = `
SELECT ` + entryColumns + `
FROM vocabulary
ORDER BY language, word_normalized`

// Create inserts a new entry and returns the persisted domain.Entry.
// A duplicate (word_normalized, language) pair results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.DateAdded.IsZero() {
		e.DateAdded = time.Now().UTC().Truncate(time.Microsecond)
	}

	row := querier.QueryRow(ctx, createSQL,
		e.ID, e.Word, e.WordNormalized, e.Language, e.Translation,
		(*string)(e.PartOfSpeech), e.ExampleSentence, e.Notes, e.DateAdded,
	)

	created, err := scanEntry(row)
	if err != nil {
		return domain.Entry{}, postgres.MapError(err, "vocabulary", key(e.WordNormalized, e.Language))
	}

	return created, nil
}

// Restore inserts an entry with its full review history, as read back from
// an export. Unlike Create it writes times_reviewed, last_reviewed, and
// confidence_score instead of letting them default.
func (r *Repo) Restore(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.DateAdded.IsZero() {
		e.DateAdded = time.Now().UTC().Truncate(time.Microsecond)
	}

	row := querier.QueryRow(ctx, restoreSQL,
		e.ID, e.Word, e.WordNormalized, e.Language, e.Translation,
		(*string)(e.PartOfSpeech), e.ExampleSentence, e.Notes, e.DateAdded,
		e.TimesReviewed, e.LastReviewed, e.ConfidenceScore,
	)

	restored, err := scanEntry(row)
	if err != nil {
		return domain.Entry{}, postgres.MapError(err, "vocabulary", key(e.WordNormalized, e.Language))
	}

	return restored, nil
}

// GetByID returns an entry by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Entry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return domain.Entry{}, postgres.MapError(err, "vocabulary", id.String())
	}

	return e, nil
}

// GetByWord returns an entry by its normalized word and language.
func (r *Repo) GetByWord(ctx context.Context, wordNormalized, language string) (domain.Entry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(querier.QueryRow(ctx, getByWordSQL, wordNormalized, language))
	if err != nil {
		return domain.Entry{}, postgres.MapError(err, "vocabulary", key(wordNormalized, language))
	}

	return e, nil
}

// Find returns entries matching the filter. Results are ordered by the
// filter's sort key; the zero filter returns everything, most recent first.
func (r *Repo) Find(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := buildFindQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}

	return entries, nil
}

// All streams every entry ordered by (language, word). The export path uses
// this to avoid loading the whole table into memory.
func (r *Repo) All(ctx context.Context) iter.Seq2[domain.Entry, error] {
	return func(yield func(domain.Entry, error) bool) {
		querier := postgres.QuerierFromCtx(ctx, r.pool)

		rows, err := querier.Query(ctx, allSQL)
		if err != nil {
			yield(domain.Entry{}, fmt.Errorf("list entries: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				yield(domain.Entry{}, fmt.Errorf("scan entry: %w", err))
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.Entry{}, fmt.Errorf("iterate entries: %w", err))
		}
	}
}

// Update applies a patch to the entry identified by (word_normalized, language)
// and returns the updated row. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Update(ctx context.Context, wordNormalized, language string, patch domain.EntryPatch) (domain.Entry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if patch.IsEmpty() {
		return r.GetByWord(ctx, wordNormalized, language)
	}

	b := sq.Update("vocabulary").
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"word_normalized": wordNormalized, "language": language}).
		Suffix("RETURNING " + entryColumns)

	if patch.Translation != nil {
		b = b.Set("translation", *patch.Translation)
	}
	if patch.PartOfSpeech != nil {
		b = b.Set("part_of_speech", string(*patch.PartOfSpeech))
	}
	if patch.ExampleSentence != nil {
		b = b.Set("example_sentence", *patch.ExampleSentence)
	}
	if patch.Notes != nil {
		b = b.Set("notes", *patch.Notes)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return domain.Entry{}, fmt.Errorf("build update query: %w", err)
	}

	e, err := scanEntry(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Entry{}, postgres.MapError(err, "vocabulary", key(wordNormalized, language))
	}

	return e, nil
}

// Delete removes an entry by (word_normalized, language).
// Returns domain.ErrNotFound if the entry does not exist.
func (r *Repo) Delete(ctx context.Context, wordNormalized, language string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, wordNormalized, language)
	if err != nil {
		return postgres.MapError(err, "vocabulary", key(wordNormalized, language))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vocabulary %s: %w", key(wordNormalized, language), domain.ErrNotFound)
	}

	return nil
}

// RecordReview bumps the review counters and moves the confidence score by
// the given step. This is the only mutator of the review fields.
// Returns domain.ErrNotFound if the entry does not exist.
func (r *Repo) RecordReview(ctx context.Context, wordNormalized, language string, wasCorrect bool, step float64) (domain.Entry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(querier.QueryRow(ctx, recordReviewSQL, wordNormalized, language, wasCorrect, step))
	if err != nil {
		return domain.Entry{}, postgres.MapError(err, "vocabulary", key(wordNormalized, language))
	}

	return e, nil
}

// SampleByLanguage returns up to count entries of the given language in
// uniform random order. Fewer rows than requested is not an error.
func (r *Repo) SampleByLanguage(ctx context.Context, language string, count int) ([]domain.Entry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sampleByLanguageSQL, language, count)
	if err != nil {
		return nil, fmt.Errorf("sample entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("sample entries: %w", err)
	}

	return entries, nil
}

// CountByLanguage returns the number of entries stored for a language.
func (r *Repo) CountByLanguage(ctx context.Context, language string) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByLanguageSQL, language).Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}

	return count, nil
}

// LanguageStats returns per-language aggregates ordered by language name.
// Only languages with at least one entry appear.
func (r *Repo) LanguageStats(ctx context.Context) ([]domain.LanguageStat, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, languageStatsSQL)
	if err != nil {
		return nil, fmt.Errorf("language stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.LanguageStat
	for rows.Next() {
		var s domain.LanguageStat
		if err := rows.Scan(&s.Language, &s.Entries, &s.AvgReviews, &s.AvgConfidence); err != nil {
			return nil, fmt.Errorf("scan language stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate language stats: %w", err)
	}

	if stats == nil {
		stats = []domain.LanguageStat{}
	}

	return stats, nil
}

func key(wordNormalized, language string) string {
	return wordNormalized + "/" + language
}

// scanEntry scans a single row into a domain.Entry.
func scanEntry(row pgx.Row) (domain.Entry, error) {
	var (
		e   domain.Entry
		pos *string
	)

	err := row.Scan(
		&e.ID, &e.Word, &e.WordNormalized, &e.Language, &e.Translation, &pos,
		&e.ExampleSentence, &e.Notes, &e.DateAdded, &e.TimesReviewed,
		&e.LastReviewed, &e.ConfidenceScore,
	)
	if err != nil {
		return domain.Entry{}, err
	}

	if pos != nil {
		p := domain.PartOfSpeech(*pos)
		e.PartOfSpeech = &p
	}

	return e, nil
}

// scanEntries scans multiple rows into a domain.Entry slice.
func scanEntries(rows pgx.Rows) ([]domain.Entry, error) {
	var entries []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []domain.Entry{}
	}

	return entries, nil
}
