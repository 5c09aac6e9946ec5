package practice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/heartmarshall/langtutor-backend/internal/config"
	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entrySampler interface {
	SampleByLanguage(ctx context.Context, language string, count int) ([]domain.Entry, error)
}

type reviewRecorder interface {
	RecordReview(ctx context.Context, word, language string, wasCorrect bool) (domain.Entry, error)
}

type flashcardGenerator interface {
	ExtractFlashcards(ctx context.Context, language string, count int) (*domain.FlashcardBatch, error)
}

// ---------------------------------------------------------------------------
// Manager
// ---------------------------------------------------------------------------

// Manager owns at most one active practice session. Starting a new session
// discards the previous one, whatever its state; abandonment needs no
// explicit teardown.
type Manager struct {
	log     *slog.Logger
	sampler entrySampler
	reviews reviewRecorder
	cards   flashcardGenerator
	policy  domain.AnswerPolicy
	maxSize int

	mu      sync.Mutex
	current *Session
}

// NewManager creates a practice session manager. cards may be nil when no
// gateway is configured; StartGenerated then fails cleanly.
func NewManager(logger *slog.Logger, sampler entrySampler, reviews reviewRecorder, cards flashcardGenerator, cfg config.PracticeConfig) *Manager {
	return &Manager{
		log:     logger.With("service", "practice"),
		sampler: sampler,
		reviews: reviews,
		cards:   cards,
		policy: domain.AnswerPolicy{
			FoldDiacritics:   cfg.FoldDiacritics,
			AcceptInfinitive: cfg.AcceptInfinitive,
		},
		maxSize: cfg.MaxSessionWords,
	}
}

// Start samples up to count stored entries of the language uniformly without
// replacement and begins a session over them. Fewer entries than requested
// shortens the session; an empty language is the only hard failure.
func (m *Manager) Start(ctx context.Context, language string, count int) (*Session, error) {
	if strings.TrimSpace(language) == "" {
		return nil, domain.NewValidationError("language", "must not be empty")
	}
	count = m.clampCount(count)

	entries, err := m.sampler.SampleByLanguage(ctx, language, count)
	if err != nil {
		return nil, fmt.Errorf("sample vocabulary: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("language %s: %w", language, domain.ErrInsufficientVocabulary)
	}

	items := make([]sessionItem, len(entries))
	for i, e := range entries {
		items[i] = sessionItem{
			word:         e.Word,
			partOfSpeech: e.PartOfSpeech,
			accepted:     e.AcceptedTranslations(),
		}
	}

	session := newSession(language, items, m.policy, true)

	m.mu.Lock()
	replaced := m.current != nil && m.current.State() == domain.SessionStateInProgress
	m.current = session
	m.mu.Unlock()

	m.log.InfoContext(ctx, "practice session started",
		slog.String("language", language),
		slog.Int("items", len(items)),
		slog.Bool("replaced_active", replaced),
	)

	return session, nil
}

// StartGenerated builds a session from freshly generated flashcards instead
// of the store. Its answers are graded the same way but never write reviews
// back.
func (m *Manager) StartGenerated(ctx context.Context, language string, count int) (*Session, error) {
	if m.cards == nil {
		return nil, fmt.Errorf("start generated session: no generator configured")
	}
	if strings.TrimSpace(language) == "" {
		return nil, domain.NewValidationError("language", "must not be empty")
	}
	count = m.clampCount(count)

	batch, err := m.cards.ExtractFlashcards(ctx, language, count)
	if err != nil {
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}
	if len(batch.Words) == 0 {
		return nil, fmt.Errorf("language %s: %w", language, domain.ErrInsufficientVocabulary)
	}

	items := make([]sessionItem, len(batch.Words))
	for i, w := range batch.Words {
		items[i] = sessionItem{
			word:         w.Word,
			partOfSpeech: w.PartOfSpeech,
			accepted:     w.Translations,
		}
	}

	session := newSession(language, items, m.policy, false)

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	m.log.InfoContext(ctx, "generated practice session started",
		slog.String("language", language),
		slog.Int("items", len(items)),
		slog.Bool("short_count", batch.ShortCount()),
	)

	return session, nil
}

// CurrentItem returns the item the active session is waiting on.
func (m *Manager) CurrentItem() (Item, error) {
	session, err := m.active()
	if err != nil {
		return Item{}, err
	}
	return session.CurrentItem()
}

// SubmitAnswer grades the answer for the current item, writes the review
// back for store-backed sessions, and advances. The review write happens
// before the session mutates, so a storage failure leaves the item
// answerable again.
func (m *Manager) SubmitAnswer(ctx context.Context, userText string) (Item, bool, error) {
	session, err := m.active()
	if err != nil {
		return Item{}, false, err
	}

	item, err := session.CurrentItem()
	if err != nil {
		return Item{}, false, err
	}

	correct := session.matches(userText, session.items[session.pos].accepted)

	if session.storeBacked {
		if _, err := m.reviews.RecordReview(ctx, item.Word, session.language, correct); err != nil {
			return Item{}, false, fmt.Errorf("record review: %w", err)
		}
	}

	if _, err := session.submit(userText); err != nil {
		return Item{}, false, err
	}

	return item, correct, nil
}

// Result returns the completed session's outcomes and score.
func (m *Manager) Result() (Result, error) {
	session, err := m.active()
	if err != nil {
		return Result{}, err
	}
	return session.Result()
}

// Abandon discards the active session, if any.
func (m *Manager) Abandon() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

func (m *Manager) active() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, domain.ErrInvalidSessionState
	}
	return m.current, nil
}

func (m *Manager) clampCount(count int) int {
	if count <= 0 {
		count = 1
	}
	if m.maxSize > 0 && count > m.maxSize {
		count = m.maxSize
	}
	return count
}
