package vocabulary

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langtutor-backend/internal/config"
	"github.com/heartmarshall/langtutor-backend/internal/domain"
	"github.com/heartmarshall/langtutor-backend/internal/provider"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockEntryRepo struct {
	CreateFunc        func(ctx context.Context, e domain.Entry) (domain.Entry, error)
	RestoreFunc       func(ctx context.Context, e domain.Entry) (domain.Entry, error)
	GetByWordFunc     func(ctx context.Context, wordNormalized, language string) (domain.Entry, error)
	FindFunc          func(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)
	AllFunc           func(ctx context.Context) iter.Seq2[domain.Entry, error]
	UpdateFunc        func(ctx context.Context, wordNormalized, language string, patch domain.EntryPatch) (domain.Entry, error)
	DeleteFunc        func(ctx context.Context, wordNormalized, language string) error
	RecordReviewFunc  func(ctx context.Context, wordNormalized, language string, wasCorrect bool, step float64) (domain.Entry, error)
	LanguageStatsFunc func(ctx context.Context) ([]domain.LanguageStat, error)
}

func (m *mockEntryRepo) Create(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return e, nil
}

func (m *mockEntryRepo) Restore(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, e)
	}
	return e, nil
}

func (m *mockEntryRepo) GetByWord(ctx context.Context, wordNormalized, language string) (domain.Entry, error) {
	if m.GetByWordFunc != nil {
		return m.GetByWordFunc(ctx, wordNormalized, language)
	}
	return domain.Entry{}, domain.ErrNotFound
}

func (m *mockEntryRepo) Find(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockEntryRepo) All(ctx context.Context) iter.Seq2[domain.Entry, error] {
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}
	return func(func(domain.Entry, error) bool) {}
}

func (m *mockEntryRepo) Update(ctx context.Context, wordNormalized, language string, patch domain.EntryPatch) (domain.Entry, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, wordNormalized, language, patch)
	}
	return domain.Entry{}, domain.ErrNotFound
}

func (m *mockEntryRepo) Delete(ctx context.Context, wordNormalized, language string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, wordNormalized, language)
	}
	return domain.ErrNotFound
}

func (m *mockEntryRepo) RecordReview(ctx context.Context, wordNormalized, language string, wasCorrect bool, step float64) (domain.Entry, error) {
	if m.RecordReviewFunc != nil {
		return m.RecordReviewFunc(ctx, wordNormalized, language, wasCorrect, step)
	}
	return domain.Entry{}, domain.ErrNotFound
}

func (m *mockEntryRepo) LanguageStats(ctx context.Context) ([]domain.LanguageStat, error) {
	if m.LanguageStatsFunc != nil {
		return m.LanguageStatsFunc(ctx)
	}
	return nil, nil
}

type mockGenerator struct {
	ChatFunc func(ctx context.Context, messages []provider.Message, opts provider.Options) (string, error)
}

func (m *mockGenerator) Chat(ctx context.Context, messages []provider.Message, opts provider.Options) (string, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages, opts)
	}
	return "", errors.New("unexpected Chat call")
}

// mockTxRunner runs the function directly; transactional behavior is covered
// by the repository integration tests.
type mockTxRunner struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

func newTestService(repo *mockEntryRepo, gen *mockGenerator) *Service {
	var g generator
	if gen != nil {
		g = gen
	}
	return NewService(
		slog.Default(),
		repo,
		g,
		&mockTxRunner{},
		config.LLMConfig{Model: "test-model", MaxTokens: 256},
		config.PracticeConfig{ConfidenceStep: 0.3},
	)
}

// ===========================================================================
// Add
// ===========================================================================

func TestAdd_NormalizesAndDefaults(t *testing.T) {
	t.Parallel()

	var captured domain.Entry
	repo := &mockEntryRepo{
		CreateFunc: func(_ context.Context, e domain.Entry) (domain.Entry, error) {
			captured = e
			e.DateAdded = time.Now()
			return e, nil
		},
	}
	svc := newTestService(repo, nil)

	created, err := svc.Add(context.Background(), AddInput{
		Word:        "  Bonjour ",
		Language:    " French ",
		Translation: " hello ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bonjour", captured.Word)
	assert.Equal(t, "bonjour", captured.WordNormalized)
	assert.Equal(t, "French", captured.Language)
	assert.Equal(t, "hello", captured.Translation)
	assert.Equal(t, "Bonjour", created.Word)
}

func TestAdd_ValidationCollectsAllErrors(t *testing.T) {
	t.Parallel()

	repo := &mockEntryRepo{
		CreateFunc: func(context.Context, domain.Entry) (domain.Entry, error) {
			t.Fatal("Create must not be called on invalid input")
			return domain.Entry{}, nil
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.Add(context.Background(), AddInput{})
	require.ErrorIs(t, err, domain.ErrValidation)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Errors, 3)
}

func TestAdd_DuplicateSurfacesConflict(t *testing.T) {
	t.Parallel()

	repo := &mockEntryRepo{
		CreateFunc: func(context.Context, domain.Entry) (domain.Entry, error) {
			return domain.Entry{}, domain.ErrAlreadyExists
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.Add(context.Background(), AddInput{Word: "hund", Language: "German", Translation: "dog"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

// ===========================================================================
// Update / Remove / Find / RecordReview
// ===========================================================================

func TestUpdate_RejectsEmptyTranslation(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockEntryRepo{}, nil)

	empty := "   "
	_, err := svc.Update(context.Background(), "hund", "German", domain.EntryPatch{Translation: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_NormalizesIdentity(t *testing.T) {
	t.Parallel()

	repo := &mockEntryRepo{
		UpdateFunc: func(_ context.Context, wordNormalized, language string, _ domain.EntryPatch) (domain.Entry, error) {
			assert.Equal(t, "hund", wordNormalized)
			assert.Equal(t, "German", language)
			return domain.Entry{Word: "Hund"}, nil
		},
	}
	svc := newTestService(repo, nil)

	tr := "dog, hound"
	got, err := svc.Update(context.Background(), "  HUND ", "German", domain.EntryPatch{Translation: &tr})
	require.NoError(t, err)
	assert.Equal(t, "Hund", got.Word)
}

func TestRemove_NotFoundPassesThrough(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockEntryRepo{}, nil)

	err := svc.Remove(context.Background(), "ghost", "French")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFind_RejectsUnknownSortKey(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockEntryRepo{}, nil)

	_, err := svc.Find(context.Background(), domain.EntryFilter{SortBy: "confidence"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecordReview_UsesConfiguredStep(t *testing.T) {
	t.Parallel()

	repo := &mockEntryRepo{
		RecordReviewFunc: func(_ context.Context, wordNormalized, language string, wasCorrect bool, step float64) (domain.Entry, error) {
			assert.Equal(t, "bonjour", wordNormalized)
			assert.True(t, wasCorrect)
			assert.InDelta(t, 0.3, step, 1e-9)
			return domain.Entry{TimesReviewed: 1, ConfidenceScore: 0.3}, nil
		},
	}
	svc := newTestService(repo, nil)

	got, err := svc.RecordReview(context.Background(), "Bonjour", "French", true)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TimesReviewed)
}

// ===========================================================================
// ExportCSV
// ===========================================================================

func TestExportCSV_StableColumnOrder(t *testing.T) {
	t.Parallel()

	pos := domain.PartOfSpeechNoun
	example := "Der Hund bellt."
	added := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	reviewed := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	entries := []domain.Entry{
		{
			Word:            "Hund",
			Language:        "German",
			Translation:     "dog",
			PartOfSpeech:    &pos,
			ExampleSentence: &example,
			DateAdded:       added,
			TimesReviewed:   3,
			LastReviewed:    &reviewed,
			ConfidenceScore: 0.657,
		},
		{
			Word:        "manger",
			Language:    "French",
			Translation: "to eat",
			DateAdded:   added,
		},
	}

	repo := &mockEntryRepo{
		AllFunc: func(context.Context) iter.Seq2[domain.Entry, error] {
			return func(yield func(domain.Entry, error) bool) {
				for _, e := range entries {
					if !yield(e, nil) {
						return
					}
				}
			}
		},
	}
	svc := newTestService(repo, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		"Word,Translation,Language,Part of Speech,Example Sentence,Notes,Date Added,Times Reviewed,Last Reviewed,Confidence Score",
		lines[0])
	assert.Equal(t,
		"Hund,dog,German,NOUN,Der Hund bellt.,,2026-03-14 09:26:53,3,2026-03-15 10:00:00,0.66",
		lines[1])
	assert.Equal(t,
		"manger,to eat,French,,,,2026-03-14 09:26:53,0,,0.00",
		lines[2])
}

func TestExportCSV_RepoErrorAborts(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection lost")
	repo := &mockEntryRepo{
		AllFunc: func(context.Context) iter.Seq2[domain.Entry, error] {
			return func(yield func(domain.Entry, error) bool) {
				yield(domain.Entry{}, boom)
			}
		},
	}
	svc := newTestService(repo, nil)

	err := svc.ExportCSV(context.Background(), &bytes.Buffer{})
	assert.ErrorIs(t, err, boom)
}

// ===========================================================================
// Translate / Stats
// ===========================================================================

func TestTranslate(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{
		ChatFunc: func(_ context.Context, messages []provider.Message, opts provider.Options) (string, error) {
			require.Len(t, messages, 2)
			assert.Equal(t, provider.RoleSystem, messages[0].Role)
			assert.Contains(t, messages[1].Content, "Translate this French text to English: Bonjour tout le monde")
			assert.Equal(t, "test-model", opts.Model)
			return "  Hello everyone  ", nil
		},
	}
	svc := newTestService(&mockEntryRepo{}, gen)

	got, err := svc.Translate(context.Background(), "Bonjour tout le monde", "French")
	require.NoError(t, err)
	assert.Equal(t, "Hello everyone", got)
}

func TestTranslate_EmptyText(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockEntryRepo{}, &mockGenerator{})

	_, err := svc.Translate(context.Background(), "  ", "French")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStats_TotalsLanguages(t *testing.T) {
	t.Parallel()

	repo := &mockEntryRepo{
		LanguageStatsFunc: func(context.Context) ([]domain.LanguageStat, error) {
			return []domain.LanguageStat{
				{Language: "French", Entries: 12, AvgReviews: 2.5, AvgConfidence: 0.4},
				{Language: "German", Entries: 8, AvgReviews: 1.0, AvgConfidence: 0.2},
			}, nil
		},
	}
	svc := newTestService(repo, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, stats.TotalEntries)
	assert.Len(t, stats.Languages, 2)
}
