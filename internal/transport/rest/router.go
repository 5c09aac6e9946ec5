// Package rest wires the HTTP API: vocabulary CRUD with CSV export and
// import, model-backed
// enrichment, flashcard generation, translation, practice sessions, and
// health probes.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/langtutor-backend/internal/config"
	"github.com/heartmarshall/langtutor-backend/internal/transport/middleware"
)

// Handlers bundles everything NewRouter mounts.
type Handlers struct {
	Vocabulary *VocabularyHandler
	Extract    *ExtractHandler
	Practice   *PracticeHandler
	Health     *HealthHandler
}

// NewRouter builds the full route table with the standard middleware chain.
// The model-backed endpoints additionally pass through a per-IP rate limiter
// when cfg.Server.LLMRateLimit is positive; limiter may be nil in that case.
func NewRouter(h Handlers, cfg *config.Config, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /api/v1/vocabulary", h.Vocabulary.Add)
	mux.HandleFunc("GET /api/v1/vocabulary", h.Vocabulary.List)
	mux.HandleFunc("GET /api/v1/vocabulary/export", h.Vocabulary.Export)
	mux.HandleFunc("POST /api/v1/vocabulary/import", h.Vocabulary.Import)
	mux.HandleFunc("GET /api/v1/vocabulary/stats", h.Vocabulary.Stats)
	mux.HandleFunc("GET /api/v1/vocabulary/{word}", h.Vocabulary.Get)
	mux.HandleFunc("PATCH /api/v1/vocabulary/{word}", h.Vocabulary.Update)
	mux.HandleFunc("DELETE /api/v1/vocabulary/{word}", h.Vocabulary.Delete)

	llm := middleware.Chain()
	if limiter != nil && cfg.Server.LLMRateLimit > 0 {
		llm = middleware.Chain(limiter.Limit(cfg.Server.LLMRateLimit))
	}
	mux.Handle("POST /api/v1/enrich", llm(http.HandlerFunc(h.Extract.Enrich)))
	mux.Handle("POST /api/v1/flashcards", llm(http.HandlerFunc(h.Extract.Flashcards)))
	mux.Handle("POST /api/v1/translate", llm(http.HandlerFunc(h.Vocabulary.Translate)))

	mux.HandleFunc("POST /api/v1/practice/session", h.Practice.Start)
	mux.HandleFunc("DELETE /api/v1/practice/session", h.Practice.Abandon)
	mux.HandleFunc("GET /api/v1/practice/session/current", h.Practice.Current)
	mux.HandleFunc("POST /api/v1/practice/session/answer", h.Practice.Answer)
	mux.HandleFunc("GET /api/v1/practice/session/result", h.Practice.Result)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)

	return chain(mux)
}
