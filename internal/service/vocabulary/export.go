package vocabulary

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

// csvHeader is the stable export column order. Tools downstream depend on it;
// never reorder.
var csvHeader = []string{
	"Word", "Translation", "Language", "Part of Speech",
	"Example Sentence", "Notes", "Date Added", "Times Reviewed",
	"Last Reviewed", "Confidence Score",
}

// ExportCSV streams the whole store as CSV, one row per entry, ordered by
// (language, word).
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	count := 0
	for entry, err := range s.entries.All(ctx) {
		if err != nil {
			return fmt.Errorf("export entries: %w", err)
		}
		if err := cw.Write(csvRow(entry)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
		count++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	s.log.InfoContext(ctx, "vocabulary exported", slog.Int("entries", count))
	return nil
}

func csvRow(e domain.Entry) []string {
	pos := ""
	if e.PartOfSpeech != nil {
		pos = string(*e.PartOfSpeech)
	}
	example := ""
	if e.ExampleSentence != nil {
		example = *e.ExampleSentence
	}
	notes := ""
	if e.Notes != nil {
		notes = *e.Notes
	}
	lastReviewed := ""
	if e.LastReviewed != nil {
		lastReviewed = e.LastReviewed.Format(timestampLayout)
	}

	return []string{
		e.Word,
		e.Translation,
		e.Language,
		pos,
		example,
		notes,
		e.DateAdded.Format(timestampLayout),
		strconv.Itoa(e.TimesReviewed),
		lastReviewed,
		fmt.Sprintf("%.2f", e.ConfidenceScore),
	}
}
