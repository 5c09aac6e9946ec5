// Package app wires the application together: configuration, logging,
// database pool and migrations, the inference gateway adapter, services,
// and the HTTP server with graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/heartmarshall/langtutor-backend/internal/adapter/postgres"
	vocabrepo "github.com/heartmarshall/langtutor-backend/internal/adapter/postgres/vocabulary"
	"github.com/heartmarshall/langtutor-backend/internal/config"
	"github.com/heartmarshall/langtutor-backend/internal/service/extract"
	"github.com/heartmarshall/langtutor-backend/internal/service/practice"
	"github.com/heartmarshall/langtutor-backend/internal/service/vocabulary"
	"github.com/heartmarshall/langtutor-backend/internal/transport/middleware"
	"github.com/heartmarshall/langtutor-backend/internal/transport/rest"
)

// Run is the application entry point. It blocks until ctx is canceled or a
// termination signal arrives, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if err := Migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	gen, err := newGenerator(logger, cfg.LLM)
	if err != nil {
		return fmt.Errorf("inference gateway: %w", err)
	}

	repo := vocabrepo.New(pool)

	extractSvc := extract.NewService(logger, gen, cfg.LLM)
	vocabSvc := vocabulary.NewService(logger, repo, gen, postgres.NewTxManager(pool), cfg.LLM, cfg.Practice)
	practiceMgr := practice.NewManager(logger, repo, vocabSvc, extractSvc, cfg.Practice)

	var limiter *middleware.RateLimiter
	if cfg.Server.LLMRateLimit > 0 {
		limiter = middleware.NewRateLimiter(rateLimitCleanupInterval)
		defer limiter.Stop()
	}

	handler := rest.NewRouter(rest.Handlers{
		Vocabulary: rest.NewVocabularyHandler(vocabSvc, logger),
		Extract:    rest.NewExtractHandler(extractSvc, cfg.Practice.BatchWordCount, logger),
		Practice:   rest.NewPracticeHandler(practiceMgr, logger),
		Health:     rest.NewHealthHandler(pool, gen, cfg.LLM.Model, BuildVersion()),
	}, cfg, limiter, logger)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
