package vocabulary

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// buildFindQuery translates an EntryFilter into a SELECT statement. Sort keys
// outside the allowed set fall back to date_added; word and times_reviewed
// get (language, word_normalized) as a stable tiebreaker.
func buildFindQuery(filter domain.EntryFilter) (string, []any, error) {
	b := sq.Select(
		"id", "word", "word_normalized", "language", "translation", "part_of_speech",
		"example_sentence", "notes", "date_added", "times_reviewed", "last_reviewed",
		"confidence_score",
	).
		From("vocabulary").
		PlaceholderFormat(sq.Dollar)

	if filter.Language != nil && *filter.Language != "" {
		b = b.Where(sq.Eq{"language": *filter.Language})
	}

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"word": pattern},
			sq.ILike{"translation": pattern},
		})
	}

	b = b.OrderBy(orderClauses(filter)...)

	limit := filter.Limit
	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	b = b.Limit(uint64(limit))

	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}

	return b.ToSql()
}

func orderClauses(filter domain.EntryFilter) []string {
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}

	switch filter.SortBy {
	case domain.SortByWord:
		return []string{"word_normalized " + dir, "language ASC"}
	case domain.SortByTimesReviewed:
		return []string{"times_reviewed " + dir, "word_normalized ASC", "language ASC"}
	case domain.SortByDateAdded:
		return []string{"date_added " + dir, "id ASC"}
	default:
		// unset or unknown: most recent first
		return []string{"date_added DESC", "id ASC"}
	}
}
