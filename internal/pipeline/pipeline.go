package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/FranksOps/serpscrape/internal/metrics"
	"github.com/FranksOps/serpscrape/internal/serp"
	"github.com/FranksOps/serpscrape/internal/storage"
)

// Session is a browser session the pipeline owns for the duration of a run.
type Session interface {
	serp.Page
	Close() error
}

// SessionFactory acquires a new Session. A failure is fatal for the run.
type SessionFactory func(ctx context.Context) (Session, error)

// Extractor is satisfied by serp.Extractor.
type Extractor interface {
	Run(ctx context.Context, page serp.Page, query string) (serp.Extraction, error)
}

// Outcome summarizes a completed run.
type Outcome struct {
	Extraction serp.Extraction
	Saved      bool
}

// Pipeline orchestrates the three stages of a search: acquire a browser
// session, extract results, and export them. It holds no state between runs.
type Pipeline struct {
	NewSession SessionFactory
	Extractor  Extractor
	Backend    storage.Backend
	Metrics    *metrics.Recorder // optional
	Logger     *slog.Logger
}

// Run executes the pipeline for query. The session is closed on every path
// once acquired. Errors are returned only for session startup, cancellation
// and export failures; an empty or partial extraction is a normal outcome.
func (p *Pipeline) Run(ctx context.Context, query string) (out Outcome, err error) {
	if p.NewSession == nil {
		return out, errors.New("pipeline: NewSession is nil")
	}
	if p.Extractor == nil {
		return out, errors.New("pipeline: Extractor is nil")
	}
	if p.Backend == nil {
		return out, errors.New("pipeline: Backend is nil")
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	defer func() { p.recordRun(out, err) }()

	// Stage 1: acquire the browser
	sess, err := p.NewSession(ctx)
	if err != nil {
		return out, fmt.Errorf("create session: %w", err)
	}
	closed := false
	closeSession := func() {
		if closed {
			return
		}
		closed = true
		if cerr := sess.Close(); cerr != nil {
			logger.Warn("failed to close browser session", "err", cerr)
		}
	}
	defer closeSession()

	// Stage 2: extract
	ex, err := p.Extractor.Run(ctx, sess, query)
	out.Extraction = ex
	if p.Metrics != nil {
		p.Metrics.RecordExtraction(ex)
	}
	if err != nil {
		return out, fmt.Errorf("extract results: %w", err)
	}

	// The browser is not needed for export; release it before touching disk.
	closeSession()

	// Stage 3: export
	saved, err := storage.Export(ctx, p.Backend, ex.Results)
	if err != nil {
		return out, err
	}
	out.Saved = saved

	logger.Info("run finished", "query", query, "results", len(ex.Results), "saved", saved)
	return out, nil
}

func (p *Pipeline) recordRun(out Outcome, err error) {
	if p.Metrics == nil {
		return
	}
	switch {
	case err != nil:
		p.Metrics.RecordRun(metrics.OutcomeFailed)
	case out.Saved:
		p.Metrics.RecordRun(metrics.OutcomeSaved)
	case out.Extraction.TimedOut:
		p.Metrics.RecordRun(metrics.OutcomeTimeout)
	default:
		p.Metrics.RecordRun(metrics.OutcomeEmpty)
	}
}
