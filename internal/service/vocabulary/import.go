package vocabulary

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// ImportCSV reads entries in the export column order and inserts them in a
// single transaction. Either every row lands or none does; a duplicate or a
// malformed row rolls the whole import back. Review history columns are
// preserved, so export followed by import round-trips the store.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	if s.txm == nil {
		return 0, fmt.Errorf("import: no transaction manager configured")
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, domain.NewValidationError("file", "empty file")
		}
		return 0, domain.NewValidationError("file", "malformed csv: "+err.Error())
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return 0, domain.NewValidationError("file",
				fmt.Sprintf("unexpected header column %d: got %q, want %q", i+1, header[i], col))
		}
	}

	var entries []domain.Entry
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, domain.NewValidationError("file",
				fmt.Sprintf("row %d: %v", line, err))
		}

		entry, err := parseCSVRow(record)
		if err != nil {
			return 0, domain.NewValidationError("file",
				fmt.Sprintf("row %d: %v", line, err))
		}
		entries = append(entries, entry)
	}

	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		for _, entry := range entries {
			if _, err := s.entries.Restore(ctx, entry); err != nil {
				return fmt.Errorf("import %s (%s): %w", entry.Word, entry.Language, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import entries: %w", err)
	}

	s.log.InfoContext(ctx, "vocabulary imported", slog.Int("entries", len(entries)))
	return len(entries), nil
}

// parseCSVRow converts one record in csvHeader order into a domain.Entry.
func parseCSVRow(record []string) (domain.Entry, error) {
	word := strings.TrimSpace(record[0])
	if word == "" {
		return domain.Entry{}, fmt.Errorf("word is required")
	}
	translation := strings.TrimSpace(record[1])
	if translation == "" {
		return domain.Entry{}, fmt.Errorf("translation is required")
	}
	language := strings.TrimSpace(record[2])
	if language == "" {
		return domain.Entry{}, fmt.Errorf("language is required")
	}

	entry := domain.Entry{
		Word:           word,
		WordNormalized: domain.NormalizeText(word),
		Translation:    translation,
		Language:       language,
	}

	if raw := strings.TrimSpace(record[3]); raw != "" {
		pos, ok := domain.ParsePartOfSpeech(raw)
		if !ok {
			return domain.Entry{}, fmt.Errorf("unknown part of speech %q", raw)
		}
		entry.PartOfSpeech = &pos
	}
	if v := record[4]; v != "" {
		entry.ExampleSentence = &v
	}
	if v := record[5]; v != "" {
		entry.Notes = &v
	}

	if raw := strings.TrimSpace(record[6]); raw != "" {
		added, err := time.Parse(timestampLayout, raw)
		if err != nil {
			return domain.Entry{}, fmt.Errorf("invalid date added %q", raw)
		}
		entry.DateAdded = added.UTC()
	}

	reviewed, err := strconv.Atoi(strings.TrimSpace(record[7]))
	if err != nil || reviewed < 0 {
		return domain.Entry{}, fmt.Errorf("invalid times reviewed %q", record[7])
	}
	entry.TimesReviewed = reviewed

	if raw := strings.TrimSpace(record[8]); raw != "" {
		last, err := time.Parse(timestampLayout, raw)
		if err != nil {
			return domain.Entry{}, fmt.Errorf("invalid last reviewed %q", raw)
		}
		last = last.UTC()
		entry.LastReviewed = &last
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(record[9]), 64)
	if err != nil || score < 0 || score > 1 {
		return domain.Entry{}, fmt.Errorf("invalid confidence score %q", record[9])
	}
	entry.ConfidenceScore = score

	return entry, nil
}
