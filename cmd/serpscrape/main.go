// Command serpscrape runs one search and saves the first page of results.
//
// It prompts for a query on stdin, drives a Chrome session to the results
// page, extracts title, link and snippet for each organic result, and writes
// them to google_results.csv in the working directory. Settings are read from
// ./serpscrape.yaml when present.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/FranksOps/serpscrape/internal/browser"
	"github.com/FranksOps/serpscrape/internal/config"
	"github.com/FranksOps/serpscrape/internal/metrics"
	"github.com/FranksOps/serpscrape/internal/pipeline"
	"github.com/FranksOps/serpscrape/internal/serp"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log, stderr).With("run", uuid.NewString())
	slog.SetDefault(logger)

	query, err := readQuery(stdin, stdout)
	if err != nil {
		return fmt.Errorf("read query: %w", err)
	}
	// An empty query is not sent to the search engine.
	if query == "" {
		fmt.Fprintln(stdout, "No search query entered.")
		return nil
	}

	backend, err := openBackend(cfg.Output)
	if err != nil {
		return err
	}

	rec := metrics.NewRecorder()
	p := pipeline.Pipeline{
		NewSession: func(ctx context.Context) (pipeline.Session, error) {
			s, err := browser.New(ctx, cfg.Browser, logger)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		Extractor: serp.Extractor{
			BaseURL:      cfg.Search.BaseURL,
			Selectors:    cfg.Search.Selectors,
			MaxResults:   cfg.Search.MaxResults,
			Timeout:      cfg.Search.Timeout,
			PollInterval: cfg.Search.PollInterval,
			Logger:       logger,
		},
		Backend: backend,
		Metrics: rec,
		Logger:  logger,
	}

	out, runErr := p.Run(ctx, query)

	if cfg.Metrics.Textfile != "" {
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn("failed to write metrics textfile", "path", cfg.Metrics.Textfile, "err", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	report(stdout, out, cfg.Output.Path)
	return nil
}

func report(w io.Writer, out pipeline.Outcome, path string) {
	switch {
	case out.Saved:
		fmt.Fprintf(w, "Results saved to %s\n", path)
	case out.Extraction.TimedOut:
		fmt.Fprintln(w, "Timeout: search results did not load in time.")
		fmt.Fprintln(w, "No results found.")
	default:
		fmt.Fprintln(w, "No results found.")
	}
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
