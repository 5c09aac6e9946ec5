// Package vocabulary implements the vocabulary store business logic: adding
// and maintaining entries, recording practice reviews, exporting, and the
// translation helper.
package vocabulary

import (
	"context"
	"iter"
	"log/slog"

	"github.com/heartmarshall/langtutor-backend/internal/config"
	"github.com/heartmarshall/langtutor-backend/internal/domain"
	"github.com/heartmarshall/langtutor-backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryRepo interface {
	Create(ctx context.Context, e domain.Entry) (domain.Entry, error)
	Restore(ctx context.Context, e domain.Entry) (domain.Entry, error)
	GetByWord(ctx context.Context, wordNormalized, language string) (domain.Entry, error)
	Find(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)
	All(ctx context.Context) iter.Seq2[domain.Entry, error]
	Update(ctx context.Context, wordNormalized, language string, patch domain.EntryPatch) (domain.Entry, error)
	Delete(ctx context.Context, wordNormalized, language string) error
	RecordReview(ctx context.Context, wordNormalized, language string, wasCorrect bool, step float64) (domain.Entry, error)
	LanguageStats(ctx context.Context) ([]domain.LanguageStat, error)
}

type generator interface {
	Chat(ctx context.Context, messages []provider.Message, opts provider.Options) (string, error)
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the vocabulary store business logic.
type Service struct {
	log     *slog.Logger
	entries entryRepo
	gen     generator
	txm     txRunner
	step    float64
	llm     config.LLMConfig
}

// NewService creates a new vocabulary service. gen is only needed for the
// translation helper and txm only for the CSV import; either may be nil in
// contexts that don't use them (the export CLI).
func NewService(logger *slog.Logger, entries entryRepo, gen generator, txm txRunner, llm config.LLMConfig, practice config.PracticeConfig) *Service {
	return &Service{
		log:     logger.With("service", "vocabulary"),
		entries: entries,
		gen:     gen,
		txm:     txm,
		step:    practice.ConfidenceStep,
		llm:     llm,
	}
}
