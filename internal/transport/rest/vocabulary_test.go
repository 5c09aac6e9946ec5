package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
	"github.com/heartmarshall/langtutor-backend/internal/service/vocabulary"
)

type mockVocabularyService struct {
	AddFunc       func(ctx context.Context, in vocabulary.AddInput) (domain.Entry, error)
	GetFunc       func(ctx context.Context, word, language string) (domain.Entry, error)
	FindFunc      func(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)
	UpdateFunc    func(ctx context.Context, word, language string, patch domain.EntryPatch) (domain.Entry, error)
	RemoveFunc    func(ctx context.Context, word, language string) error
	ExportCSVFunc func(ctx context.Context, w io.Writer) error
	ImportCSVFunc func(ctx context.Context, r io.Reader) (int, error)
	TranslateFunc func(ctx context.Context, text, sourceLanguage string) (string, error)
	StatsFunc     func(ctx context.Context) (domain.VocabularyStats, error)
}

func (m *mockVocabularyService) Add(ctx context.Context, in vocabulary.AddInput) (domain.Entry, error) {
	return m.AddFunc(ctx, in)
}

func (m *mockVocabularyService) Get(ctx context.Context, word, language string) (domain.Entry, error) {
	return m.GetFunc(ctx, word, language)
}

func (m *mockVocabularyService) Find(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	return m.FindFunc(ctx, filter)
}

func (m *mockVocabularyService) Update(ctx context.Context, word, language string, patch domain.EntryPatch) (domain.Entry, error) {
	return m.UpdateFunc(ctx, word, language, patch)
}

func (m *mockVocabularyService) Remove(ctx context.Context, word, language string) error {
	return m.RemoveFunc(ctx, word, language)
}

func (m *mockVocabularyService) ExportCSV(ctx context.Context, w io.Writer) error {
	return m.ExportCSVFunc(ctx, w)
}

func (m *mockVocabularyService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	return m.ImportCSVFunc(ctx, r)
}

func (m *mockVocabularyService) Translate(ctx context.Context, text, sourceLanguage string) (string, error) {
	return m.TranslateFunc(ctx, text, sourceLanguage)
}

func (m *mockVocabularyService) Stats(ctx context.Context) (domain.VocabularyStats, error) {
	return m.StatsFunc(ctx)
}

func testEntry() domain.Entry {
	pos := domain.PartOfSpeechNoun
	example := "Der Hund bellt."
	return domain.Entry{
		ID:              uuid.New(),
		Word:            "Hund",
		WordNormalized:  "hund",
		Language:        "German",
		Translation:     "dog",
		PartOfSpeech:    &pos,
		ExampleSentence: &example,
		DateAdded:       time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

// serveVocab routes the request through a real mux so PathValue works.
func serveVocab(t *testing.T, svc *mockVocabularyService, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	h := NewVocabularyHandler(svc, slog.Default())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/vocabulary", h.Add)
	mux.HandleFunc("GET /api/v1/vocabulary", h.List)
	mux.HandleFunc("GET /api/v1/vocabulary/export", h.Export)
	mux.HandleFunc("POST /api/v1/vocabulary/import", h.Import)
	mux.HandleFunc("GET /api/v1/vocabulary/stats", h.Stats)
	mux.HandleFunc("GET /api/v1/vocabulary/{word}", h.Get)
	mux.HandleFunc("PATCH /api/v1/vocabulary/{word}", h.Update)
	mux.HandleFunc("DELETE /api/v1/vocabulary/{word}", h.Delete)
	mux.HandleFunc("POST /api/v1/translate", h.Translate)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestVocabularyAdd(t *testing.T) {
	t.Parallel()

	var captured vocabulary.AddInput
	svc := &mockVocabularyService{
		AddFunc: func(_ context.Context, in vocabulary.AddInput) (domain.Entry, error) {
			captured = in
			return testEntry(), nil
		},
	}

	body := `{"word":"Hund","language":"German","translation":"dog","partOfSpeech":"noun"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vocabulary", strings.NewReader(body))

	rec := serveVocab(t, svc, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Hund", captured.Word)
	require.NotNil(t, captured.PartOfSpeech)
	assert.Equal(t, domain.PartOfSpeechNoun, *captured.PartOfSpeech)
	assert.Contains(t, rec.Body.String(), `"word":"Hund"`)
	assert.Contains(t, rec.Body.String(), `"partOfSpeech":"NOUN"`)
}

func TestVocabularyAdd_BadJSON(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vocabulary", strings.NewReader("{not json"))

	rec := serveVocab(t, svc, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVocabularyAdd_UnknownPartOfSpeech(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{}
	body := `{"word":"Hund","language":"German","translation":"dog","partOfSpeech":"gerundive"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vocabulary", strings.NewReader(body))

	rec := serveVocab(t, svc, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVocabularyAdd_ValidationFieldsInResponse(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{
		AddFunc: func(_ context.Context, _ vocabulary.AddInput) (domain.Entry, error) {
			return domain.Entry{}, domain.NewValidationErrors([]domain.FieldError{
				{Field: "word", Message: "required"},
				{Field: "translation", Message: "required"},
			})
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vocabulary", strings.NewReader(`{"language":"German"}`))

	rec := serveVocab(t, svc, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"word"`)
	assert.Contains(t, rec.Body.String(), `"field":"translation"`)
}

func TestVocabularyAdd_Conflict(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{
		AddFunc: func(_ context.Context, _ vocabulary.AddInput) (domain.Entry, error) {
			return domain.Entry{}, domain.ErrAlreadyExists
		},
	}
	body := `{"word":"Hund","language":"German","translation":"dog"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vocabulary", strings.NewReader(body))

	rec := serveVocab(t, svc, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestVocabularyGet(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{
		GetFunc: func(_ context.Context, word, language string) (domain.Entry, error) {
			assert.Equal(t, "Hund", word)
			assert.Equal(t, "German", language)
			return testEntry(), nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vocabulary/Hund?language=German", nil)

	rec := serveVocab(t, svc, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"translation":"dog"`)
}

func TestVocabularyGet_MissingLanguage(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vocabulary/Hund", nil)

	rec := serveVocab(t, svc, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVocabularyGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{
		GetFunc: func(_ context.Context, _, _ string) (domain.Entry, error) {
			return domain.Entry{}, domain.ErrNotFound
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vocabulary/missing?language=German", nil)

	rec := serveVocab(t, svc, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVocabularyList_FilterFromQuery(t *testing.T) {
	t.Parallel()

	var captured domain.EntryFilter
	svc := &mockVocabularyService{
		FindFunc: func(_ context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
			captured = filter
			return []domain.Entry{testEntry()}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/vocabulary?language=German&search=hun&sortBy=word&order=desc&limit=25&offset=5", nil)

	rec := serveVocab(t, svc, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured.Language)
	assert.Equal(t, "German", *captured.Language)
	require.NotNil(t, captured.Search)
	assert.Equal(t, "hun", *captured.Search)
	assert.Equal(t, domain.SortByWord, captured.SortBy)
	assert.True(t, captured.SortDesc)
	assert.Equal(t, 25, captured.Limit)
	assert.Equal(t, 5, captured.Offset)
	assert.Contains(t, rec.Body.String(), `"count":1`)
}

func TestVocabularyUpdate(t *testing.T) {
	t.Parallel()

	var captured domain.EntryPatch
	svc := &mockVocabularyService{
		UpdateFunc: func(_ context.Context, word, language string, patch domain.EntryPatch) (domain.Entry, error) {
			assert.Equal(t, "Hund", word)
			assert.Equal(t, "German", language)
			captured = patch
			return testEntry(), nil
		},
	}
	body := `{"translation":"dog, hound"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/vocabulary/Hund?language=German", strings.NewReader(body))

	rec := serveVocab(t, svc, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured.Translation)
	assert.Equal(t, "dog, hound", *captured.Translation)
	assert.Nil(t, captured.PartOfSpeech)
}

func TestVocabularyDelete(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{
		RemoveFunc: func(_ context.Context, word, language string) error {
			assert.Equal(t, "Hund", word)
			assert.Equal(t, "German", language)
			return nil
		},
	}
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/vocabulary/Hund?language=German", nil)

	rec := serveVocab(t, svc, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestVocabularyExport(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{
		ExportCSVFunc: func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "Word,Translation\nHund,dog\n")
			return err
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vocabulary/export", nil)

	rec := serveVocab(t, svc, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "vocabulary.csv")
	assert.Contains(t, rec.Body.String(), "Hund,dog")
}

func TestVocabularyImport(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{
		ImportCSVFunc: func(_ context.Context, r io.Reader) (int, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Contains(t, string(data), "Hund,dog")
			return 2, nil
		},
	}
	body := "Word,Translation,Language,Part of Speech,Example Sentence,Notes,Date Added,Times Reviewed,Last Reviewed,Confidence Score\n" +
		"Hund,dog,German,,,,2026-03-14 09:26:53,0,,0.00\n" +
		"chien,dog,French,,,,2026-03-14 09:26:53,0,,0.00\n"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vocabulary/import", strings.NewReader(body))

	rec := serveVocab(t, svc, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":2`)
}

func TestVocabularyImport_ConflictRollsUp(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{
		ImportCSVFunc: func(_ context.Context, _ io.Reader) (int, error) {
			return 0, domain.ErrAlreadyExists
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vocabulary/import", strings.NewReader("Word\n"))

	rec := serveVocab(t, svc, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestVocabularyStats(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{
		StatsFunc: func(_ context.Context) (domain.VocabularyStats, error) {
			return domain.VocabularyStats{
				TotalEntries: 3,
				Languages: []domain.LanguageStat{
					{Language: "French", Entries: 2, AvgReviews: 1.5, AvgConfidence: 0.4},
					{Language: "German", Entries: 1, AvgReviews: 0, AvgConfidence: 0},
				},
			}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vocabulary/stats", nil)

	rec := serveVocab(t, svc, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalEntries":3`)
	assert.Contains(t, rec.Body.String(), `"language":"French"`)
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	svc := &mockVocabularyService{
		TranslateFunc: func(_ context.Context, text, sourceLanguage string) (string, error) {
			assert.Equal(t, "Bonjour le monde", text)
			assert.Equal(t, "French", sourceLanguage)
			return "Hello world", nil
		},
	}
	body := `{"text":"Bonjour le monde","sourceLanguage":"French"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", strings.NewReader(body))

	rec := serveVocab(t, svc, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"translation":"Hello world"`)
}
