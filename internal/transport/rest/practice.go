package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/langtutor-backend/internal/service/practice"
)

// practiceManager defines the minimal interface needed by PracticeHandler.
type practiceManager interface {
	Start(ctx context.Context, language string, count int) (*practice.Session, error)
	StartGenerated(ctx context.Context, language string, count int) (*practice.Session, error)
	CurrentItem() (practice.Item, error)
	SubmitAnswer(ctx context.Context, userText string) (practice.Item, bool, error)
	Result() (practice.Result, error)
	Abandon()
}

// PracticeHandler serves flashcard practice session endpoints.
type PracticeHandler struct {
	mgr practiceManager
	log *slog.Logger
}

// NewPracticeHandler creates a PracticeHandler.
func NewPracticeHandler(mgr practiceManager, logger *slog.Logger) *PracticeHandler {
	return &PracticeHandler{mgr: mgr, log: logger.With("handler", "practice")}
}

type startSessionRequest struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
	// Source is "store" (default) for sessions over saved vocabulary or
	// "generated" for model-generated flashcards.
	Source string `json:"source,omitempty"`
}

type itemResponse struct {
	Position     int     `json:"position"`
	Total        int     `json:"total"`
	Word         string  `json:"word"`
	Language     string  `json:"language"`
	PartOfSpeech *string `json:"partOfSpeech,omitempty"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type answerResponse struct {
	Correct  bool          `json:"correct"`
	Item     itemResponse  `json:"item"`
	Next     *itemResponse `json:"next,omitempty"`
	Finished bool          `json:"finished"`
}

type outcomeResponse struct {
	Word    string `json:"word"`
	Answer  string `json:"answer"`
	Outcome string `json:"outcome"`
}

type resultResponse struct {
	Language string            `json:"language"`
	Outcomes []outcomeResponse `json:"outcomes"`
	Correct  int               `json:"correct"`
	Total    int               `json:"total"`
	Score    float64           `json:"score"`
}

// Start handles POST /api/v1/practice/session. Starting while another
// session is active silently replaces it.
func (h *PracticeHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var err error
	switch req.Source {
	case "", "store":
		_, err = h.mgr.Start(r.Context(), req.Language, req.Count)
	case "generated":
		_, err = h.mgr.StartGenerated(r.Context(), req.Language, req.Count)
	default:
		writeError(w, http.StatusBadRequest, "source must be store or generated")
		return
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	item, err := h.mgr.CurrentItem()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

// Current handles GET /api/v1/practice/session/current.
func (h *PracticeHandler) Current(w http.ResponseWriter, r *http.Request) {
	item, err := h.mgr.CurrentItem()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// Answer handles POST /api/v1/practice/session/answer. The response carries
// the graded item and, unless the session just completed, the next one.
func (h *PracticeHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, correct, err := h.mgr.SubmitAnswer(r.Context(), req.Answer)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := answerResponse{
		Correct: correct,
		Item:    toItemResponse(item),
	}
	if next, err := h.mgr.CurrentItem(); err == nil {
		n := toItemResponse(next)
		resp.Next = &n
	} else {
		resp.Finished = true
	}

	writeJSON(w, http.StatusOK, resp)
}

// Result handles GET /api/v1/practice/session/result.
func (h *PracticeHandler) Result(w http.ResponseWriter, r *http.Request) {
	result, err := h.mgr.Result()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := resultResponse{
		Language: result.Language,
		Outcomes: make([]outcomeResponse, len(result.Outcomes)),
		Correct:  result.Correct,
		Total:    result.Total,
		Score:    result.Score,
	}
	for i, o := range result.Outcomes {
		resp.Outcomes[i] = outcomeResponse{
			Word:    o.Word,
			Answer:  o.Answer,
			Outcome: string(o.Outcome),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Abandon handles DELETE /api/v1/practice/session.
func (h *PracticeHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	h.mgr.Abandon()
	w.WriteHeader(http.StatusNoContent)
}

func toItemResponse(item practice.Item) itemResponse {
	resp := itemResponse{
		Position: item.Position,
		Total:    item.Total,
		Word:     item.Word,
		Language: item.Language,
	}
	if item.PartOfSpeech != nil {
		s := string(*item.PartOfSpeech)
		resp.PartOfSpeech = &s
	}
	return resp
}
