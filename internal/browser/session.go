package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/FranksOps/serpscrape/pkg/useragent"
	"github.com/chromedp/chromedp"
)

// InitError reports that the browser could not be located or started.
// Nothing downstream can run without a session, so callers treat it as fatal.
type InitError struct {
	Op  string // "locate" or "start"
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("browser %s: %v", e.Op, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// Session is a live, exclusively owned browser tab. It must be closed
// exactly once; Close is safe to call again but only the first call acts.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	logger      *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// New launches a browser configured by opts. The browser lives until Close
// is called or ctx is cancelled.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	execPath, err := ResolveExecPath(opts.ExecPath)
	if err != nil {
		return nil, &InitError{Op: "locate", Err: err}
	}

	allocOpts := []chromedp.ExecAllocatorOption{chromedp.ExecPath(execPath)}
	for _, f := range opts.flags(useragent.NewPool(nil)) {
		allocOpts = append(allocOpts, chromedp.Flag(f.name, f.value))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)

	// chromedp is chatty about CDP events it does not model; keep it at debug.
	logf := func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...), "component", "chromedp")
	}
	tabCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logf),
		chromedp.WithErrorf(logf),
	)

	// The first Run with no actions starts the browser process.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		allocCancel()
		return nil, &InitError{Op: "start", Err: err}
	}

	logger.Debug("browser started", "exec_path", execPath, "headless", opts.Headless)

	return &Session{
		ctx:         tabCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		logger:      logger,
	}, nil
}

// run executes actions on the session's tab. Cancelling ctx aborts the
// actions without tearing down the tab.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url and returns once the browser reports the load event.
// Dynamic content may still be rendering.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// Location returns the URL of the document currently loaded.
func (s *Session) Location(ctx context.Context) (string, error) {
	var loc string
	if err := s.run(ctx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return loc, nil
}

// HTML returns the serialized DOM as currently rendered.
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return html, nil
}

// Close shuts the browser down and removes its temporary profile.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		// Graceful close first so Chrome flushes and exits on its own.
		if err := chromedp.Cancel(s.ctx); err != nil {
			s.closeErr = fmt.Errorf("close browser: %w", err)
		}
		s.cancel()
		s.allocCancel()
		s.logger.Debug("browser closed")
	})
	return s.closeErr
}
