package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
	"github.com/heartmarshall/langtutor-backend/internal/service/vocabulary"
)

// vocabularyService defines the minimal interface needed by VocabularyHandler.
type vocabularyService interface {
	Add(ctx context.Context, in vocabulary.AddInput) (domain.Entry, error)
	Get(ctx context.Context, word, language string) (domain.Entry, error)
	Find(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)
	Update(ctx context.Context, word, language string, patch domain.EntryPatch) (domain.Entry, error)
	Remove(ctx context.Context, word, language string) error
	ExportCSV(ctx context.Context, w io.Writer) error
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
	Translate(ctx context.Context, text, sourceLanguage string) (string, error)
	Stats(ctx context.Context) (domain.VocabularyStats, error)
}

// VocabularyHandler serves vocabulary REST endpoints.
type VocabularyHandler struct {
	svc vocabularyService
	log *slog.Logger
}

// NewVocabularyHandler creates a VocabularyHandler.
func NewVocabularyHandler(svc vocabularyService, logger *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{svc: svc, log: logger.With("handler", "vocabulary")}
}

type addEntryRequest struct {
	Word            string  `json:"word"`
	Language        string  `json:"language"`
	Translation     string  `json:"translation"`
	PartOfSpeech    *string `json:"partOfSpeech,omitempty"`
	ExampleSentence *string `json:"exampleSentence,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

type updateEntryRequest struct {
	Translation     *string `json:"translation,omitempty"`
	PartOfSpeech    *string `json:"partOfSpeech,omitempty"`
	ExampleSentence *string `json:"exampleSentence,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

type translateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
}

type entryResponse struct {
	ID              string     `json:"id"`
	Word            string     `json:"word"`
	Language        string     `json:"language"`
	Translation     string     `json:"translation"`
	PartOfSpeech    *string    `json:"partOfSpeech,omitempty"`
	ExampleSentence *string    `json:"exampleSentence,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	DateAdded       time.Time  `json:"dateAdded"`
	TimesReviewed   int        `json:"timesReviewed"`
	LastReviewed    *time.Time `json:"lastReviewed,omitempty"`
	ConfidenceScore float64    `json:"confidenceScore"`
}

type entryListResponse struct {
	Entries []entryResponse `json:"entries"`
	Count   int             `json:"count"`
}

// Add handles POST /api/v1/vocabulary.
func (h *VocabularyHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pos, ok := parsePartOfSpeech(req.PartOfSpeech)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown part of speech")
		return
	}

	entry, err := h.svc.Add(r.Context(), vocabulary.AddInput{
		Word:            req.Word,
		Language:        req.Language,
		Translation:     req.Translation,
		PartOfSpeech:    pos,
		ExampleSentence: req.ExampleSentence,
		Notes:           req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// Get handles GET /api/v1/vocabulary/{word}?language=French.
func (h *VocabularyHandler) Get(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	language := r.URL.Query().Get("language")
	if language == "" {
		writeError(w, http.StatusBadRequest, "language query parameter is required")
		return
	}

	entry, err := h.svc.Get(r.Context(), word, language)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// List handles GET /api/v1/vocabulary with optional filters:
// ?language=French&search=mais&sortBy=word&order=desc&limit=50&offset=0
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter domain.EntryFilter
	if v := q.Get("language"); v != "" {
		filter.Language = &v
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	filter.SortBy = domain.EntrySortKey(q.Get("sortBy"))
	filter.SortDesc = q.Get("order") == "desc"
	filter.Limit = queryInt(q.Get("limit"), 0)
	filter.Offset = queryInt(q.Get("offset"), 0)

	entries, err := h.svc.Find(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := entryListResponse{
		Entries: make([]entryResponse, len(entries)),
		Count:   len(entries),
	}
	for i, e := range entries {
		resp.Entries[i] = toEntryResponse(e)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Update handles PATCH /api/v1/vocabulary/{word}?language=French.
func (h *VocabularyHandler) Update(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	language := r.URL.Query().Get("language")
	if language == "" {
		writeError(w, http.StatusBadRequest, "language query parameter is required")
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pos, ok := parsePartOfSpeech(req.PartOfSpeech)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown part of speech")
		return
	}

	entry, err := h.svc.Update(r.Context(), word, language, domain.EntryPatch{
		Translation:     req.Translation,
		PartOfSpeech:    pos,
		ExampleSentence: req.ExampleSentence,
		Notes:           req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// Delete handles DELETE /api/v1/vocabulary/{word}?language=French.
func (h *VocabularyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	language := r.URL.Query().Get("language")
	if language == "" {
		writeError(w, http.StatusBadRequest, "language query parameter is required")
		return
	}

	if err := h.svc.Remove(r.Context(), word, language); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/v1/vocabulary/export. It streams the whole store
// as a CSV download.
func (h *VocabularyHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="vocabulary.csv"`)

	if err := h.svc.ExportCSV(r.Context(), w); err != nil {
		// Headers are gone by now; all we can do is log and cut the stream.
		h.log.ErrorContext(r.Context(), "csv export aborted", slog.String("error", err.Error()))
	}
}

// Import handles POST /api/v1/vocabulary/import. The request body is a CSV
// in the export column order; the whole file is applied in one transaction.
func (h *VocabularyHandler) Import(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.ImportCSV(r.Context(), r.Body)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": count})
}

// Stats handles GET /api/v1/vocabulary/stats.
func (h *VocabularyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(stats))
}

// Translate handles POST /api/v1/translate.
func (h *VocabularyHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	translation, err := h.svc.Translate(r.Context(), req.Text, req.SourceLanguage)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"translation": translation})
}

type languageStatResponse struct {
	Language      string  `json:"language"`
	Entries       int     `json:"entries"`
	AvgReviews    float64 `json:"avgReviews"`
	AvgConfidence float64 `json:"avgConfidence"`
}

type statsResponse struct {
	TotalEntries int                    `json:"totalEntries"`
	Languages    []languageStatResponse `json:"languages"`
}

func toStatsResponse(stats domain.VocabularyStats) statsResponse {
	resp := statsResponse{
		TotalEntries: stats.TotalEntries,
		Languages:    make([]languageStatResponse, len(stats.Languages)),
	}
	for i, ls := range stats.Languages {
		resp.Languages[i] = languageStatResponse{
			Language:      ls.Language,
			Entries:       ls.Entries,
			AvgReviews:    ls.AvgReviews,
			AvgConfidence: ls.AvgConfidence,
		}
	}
	return resp
}

func toEntryResponse(e domain.Entry) entryResponse {
	resp := entryResponse{
		ID:              e.ID.String(),
		Word:            e.Word,
		Language:        e.Language,
		Translation:     e.Translation,
		ExampleSentence: e.ExampleSentence,
		Notes:           e.Notes,
		DateAdded:       e.DateAdded,
		TimesReviewed:   e.TimesReviewed,
		LastReviewed:    e.LastReviewed,
		ConfidenceScore: e.ConfidenceScore,
	}
	if e.PartOfSpeech != nil {
		s := string(*e.PartOfSpeech)
		resp.PartOfSpeech = &s
	}
	return resp
}

// parsePartOfSpeech maps an optional wire value onto the closed enum.
// ok is false when the value is present but unrecognized.
func parsePartOfSpeech(raw *string) (*domain.PartOfSpeech, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	pos, ok := domain.ParsePartOfSpeech(*raw)
	if !ok {
		return nil, false
	}
	return &pos, true
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
