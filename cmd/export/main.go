// Command export dumps the whole vocabulary store as CSV to stdout or a
// file. It talks to the database directly and never touches the inference
// gateway.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/langtutor-backend/internal/adapter/postgres"
	vocabrepo "github.com/heartmarshall/langtutor-backend/internal/adapter/postgres/vocabulary"
	"github.com/heartmarshall/langtutor-backend/internal/app"
	"github.com/heartmarshall/langtutor-backend/internal/config"
	"github.com/heartmarshall/langtutor-backend/internal/service/vocabulary"
)

func main() {
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := vocabulary.NewService(logger, vocabrepo.New(pool), nil, nil, cfg.LLM, cfg.Practice)

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("create output file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := svc.ExportCSV(ctx, w); err != nil {
		logger.Error("export", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
