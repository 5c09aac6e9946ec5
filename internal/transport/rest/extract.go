package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// extractService defines the minimal interface needed by ExtractHandler.
type extractService interface {
	ExtractEnrichment(ctx context.Context, word, language string) (*domain.EnrichmentResult, error)
	ExtractFlashcards(ctx context.Context, language string, count int) (*domain.FlashcardBatch, error)
}

// ExtractHandler serves model-backed extraction endpoints: word enrichment
// and flashcard generation.
type ExtractHandler struct {
	svc          extractService
	defaultCount int
	log          *slog.Logger
}

// NewExtractHandler creates an ExtractHandler. defaultCount is used when a
// flashcard request does not name a count.
func NewExtractHandler(svc extractService, defaultCount int, logger *slog.Logger) *ExtractHandler {
	return &ExtractHandler{
		svc:          svc,
		defaultCount: defaultCount,
		log:          logger.With("handler", "extract"),
	}
}

type enrichRequest struct {
	Word     string `json:"word"`
	Language string `json:"language"`
}

type enrichResponse struct {
	Word            string  `json:"word"`
	Language        string  `json:"language"`
	Translation     string  `json:"translation"`
	PartOfSpeech    *string `json:"partOfSpeech,omitempty"`
	RawPartOfSpeech string  `json:"rawPartOfSpeech,omitempty"`
	POSFlagged      bool    `json:"posFlagged,omitempty"`
	ExampleSentence string  `json:"exampleSentence,omitempty"`
	Pronunciation   string  `json:"pronunciation,omitempty"`
	Gender          string  `json:"gender,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

type flashcardsRequest struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

type flashcardWordResponse struct {
	Word         string   `json:"word"`
	Translations []string `json:"translations"`
	PartOfSpeech *string  `json:"partOfSpeech,omitempty"`
}

type flashcardsResponse struct {
	Language  string                  `json:"language"`
	Words     []flashcardWordResponse `json:"words"`
	Requested int                     `json:"requested"`
	Returned  int                     `json:"returned"`
}

// Enrich handles POST /api/v1/enrich. It asks the model for translation and
// metadata of one word; nothing is persisted until the client adds the entry.
func (h *ExtractHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	var req enrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.ExtractEnrichment(r.Context(), req.Word, req.Language)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := enrichResponse{
		Word:            result.Word,
		Language:        result.Language,
		Translation:     result.Translation,
		RawPartOfSpeech: result.RawPartOfSpeech,
		POSFlagged:      result.POSFlagged,
		ExampleSentence: result.ExampleSentence,
		Pronunciation:   result.Pronunciation,
		Gender:          result.Gender,
		Notes:           result.Notes,
	}
	if result.PartOfSpeech != nil {
		s := string(*result.PartOfSpeech)
		resp.PartOfSpeech = &s
	}

	writeJSON(w, http.StatusOK, resp)
}

// Flashcards handles POST /api/v1/flashcards. A short batch (fewer unique
// words than requested) is still a 200; the client reads returned vs
// requested.
func (h *ExtractHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	var req flashcardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count <= 0 {
		req.Count = h.defaultCount
	}

	batch, err := h.svc.ExtractFlashcards(r.Context(), req.Language, req.Count)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toFlashcardsResponse(batch))
}

func toFlashcardsResponse(batch *domain.FlashcardBatch) flashcardsResponse {
	resp := flashcardsResponse{
		Language:  batch.Language,
		Words:     make([]flashcardWordResponse, len(batch.Words)),
		Requested: batch.Requested,
		Returned:  batch.Returned,
	}
	for i, fw := range batch.Words {
		wr := flashcardWordResponse{
			Word:         fw.Word,
			Translations: fw.Translations,
		}
		if fw.PartOfSpeech != nil {
			s := string(*fw.PartOfSpeech)
			wr.PartOfSpeech = &s
		}
		resp.Words[i] = wr
	}
	return resp
}
