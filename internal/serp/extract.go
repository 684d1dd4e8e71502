package serp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/FranksOps/serpscrape/internal/bypass"
	"github.com/FranksOps/serpscrape/internal/storage"
	"github.com/FranksOps/serpscrape/pkg/poll"
	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultMaxResults   = 10
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
)

// Extraction is the detailed outcome of a single Run.
type Extraction struct {
	Results    []storage.Result
	Containers int    // result containers present on the page
	Skipped    int    // containers dropped for a missing field
	TimedOut   bool   // no container appeared before the deadline
	Challenge  string // interstitial detected while polling, if any
	Elapsed    time.Duration
}

// Extractor turns a live results page into an ordered list of records.
// Zero-valued fields fall back to the package defaults.
type Extractor struct {
	BaseURL      string
	Selectors    Selectors
	MaxResults   int
	Timeout      time.Duration
	PollInterval time.Duration
	Logger       *slog.Logger
	// Detectors screen each snapshot for interstitials. Nil uses
	// bypass.DefaultDetectors; an empty slice disables screening.
	Detectors []bypass.Detector
}

func (e Extractor) withDefaults() Extractor {
	if e.BaseURL == "" {
		e.BaseURL = DefaultBaseURL
	}
	if e.Selectors.Container == "" {
		e.Selectors = DefaultSelectors()
	}
	if e.MaxResults <= 0 {
		e.MaxResults = DefaultMaxResults
	}
	if e.Timeout <= 0 {
		e.Timeout = DefaultTimeout
	}
	if e.PollInterval <= 0 {
		e.PollInterval = DefaultPollInterval
	}
	if e.Logger == nil {
		e.Logger = slog.Default()
	}
	if e.Detectors == nil {
		e.Detectors = bypass.DefaultDetectors()
	}
	return e
}

// Extract runs a default Extractor bounded to maxResults records and
// timeout of polling. It returns an empty slice when nothing was found, and
// always when maxResults is not positive.
func Extract(ctx context.Context, page Page, query string, maxResults int, timeout time.Duration) ([]storage.Result, error) {
	if maxResults <= 0 {
		return []storage.Result{}, nil
	}
	e := Extractor{MaxResults: maxResults, Timeout: timeout}
	ex, err := e.Run(ctx, page, query)
	return ex.Results, err
}

// Run navigates page to the results for query, waits for result containers
// and extracts up to MaxResults records in page order. Navigation failures
// and timeouts degrade to an empty extraction; only cancellation of ctx is
// returned as an error.
func (e Extractor) Run(ctx context.Context, page Page, query string) (Extraction, error) {
	cfg := e.withDefaults()
	start := time.Now()
	ex := Extraction{Results: []storage.Result{}}
	logger := cfg.Logger.With("query", query)

	target, err := QueryURL(cfg.BaseURL, query)
	if err != nil {
		return ex, err
	}

	logger.Debug("navigating", "url", target)
	if err := page.Navigate(ctx, target); err != nil {
		ex.Elapsed = time.Since(start)
		if ctx.Err() != nil {
			return ex, ctx.Err()
		}
		logger.Warn("navigation failed", "url", target, "err", err)
		return ex, nil
	}

	doc, location, err := cfg.waitForResults(ctx, page, &ex, logger)
	if err != nil {
		ex.Elapsed = time.Since(start)
		if ctx.Err() != nil {
			return ex, ctx.Err()
		}
		if errors.Is(err, ErrExtractionTimeout) {
			ex.TimedOut = true
			logger.Warn("search results did not load in time", "timeout", cfg.Timeout)
			return ex, nil
		}
		logger.Warn("waiting for results failed", "err", err)
		return ex, nil
	}

	base, err := url.Parse(location)
	if err != nil || location == "" {
		base, _ = url.Parse(target)
	}

	cfg.collect(doc, base, &ex, logger)
	ex.Elapsed = time.Since(start)

	logger.Debug("extraction finished",
		"containers", ex.Containers,
		"results", len(ex.Results),
		"skipped", ex.Skipped,
		"elapsed", ex.Elapsed,
	)
	return ex, nil
}

// waitForResults polls page snapshots until at least one container matches.
func (e Extractor) waitForResults(ctx context.Context, page Page, ex *Extraction, logger *slog.Logger) (*goquery.Document, string, error) {
	var (
		doc      *goquery.Document
		location string
	)

	err := poll.Until(ctx, e.PollInterval, e.Timeout, func(ctx context.Context) (bool, error) {
		loc, err := page.Location(ctx)
		if err != nil {
			return false, fmt.Errorf("read location: %w", err)
		}
		html, err := page.HTML(ctx)
		if err != nil {
			return false, fmt.Errorf("snapshot page: %w", err)
		}

		if ex.Challenge == "" {
			if detected, src := bypass.Analyze(bypass.Page{URL: loc, HTML: html}, e.Detectors); detected {
				ex.Challenge = src
				logger.Warn("interstitial detected, results may not appear", "source", src, "url", loc)
			}
		}

		d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return false, fmt.Errorf("parse page: %w", err)
		}
		if d.Find(e.Selectors.Container).Length() == 0 {
			return false, nil
		}

		doc, location = d, loc
		return true, nil
	})
	if errors.Is(err, poll.ErrTimeout) {
		return nil, "", fmt.Errorf("%w after %s", ErrExtractionTimeout, e.Timeout)
	}
	if err != nil {
		return nil, "", err
	}
	return doc, location, nil
}

// collect extracts records from the first MaxResults containers, skipping
// any container that fails with ErrMissingField.
func (e Extractor) collect(doc *goquery.Document, base *url.URL, ex *Extraction, logger *slog.Logger) {
	containers := doc.Find(e.Selectors.Container)
	ex.Containers = containers.Length()

	containers.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= e.MaxResults {
			return false
		}
		r, err := e.record(rendered(s), base)
		if err != nil {
			ex.Skipped++
			logger.Debug("skipping result container", "index", i, "err", err)
			return true
		}
		ex.Results = append(ex.Results, r)
		return true
	})
}

func (e Extractor) record(s *goquery.Selection, base *url.URL) (storage.Result, error) {
	title := normalizeText(s.Find(e.Selectors.Title).First().Text())
	if title == "" {
		return storage.Result{}, fmt.Errorf("%w: no %q heading", ErrMissingField, e.Selectors.Title)
	}

	anchor := s.Find(e.Selectors.Link).FilterFunction(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		return ok && strings.TrimSpace(href) != ""
	}).First()
	href, ok := anchor.Attr("href")
	if !ok {
		return storage.Result{}, fmt.Errorf("%w: no %q link", ErrMissingField, e.Selectors.Link)
	}
	link, err := resolveLink(base, href)
	if err != nil {
		return storage.Result{}, fmt.Errorf("%w: bad link %q: %v", ErrMissingField, href, err)
	}

	snippet := storage.NoSnippet
	if e.Selectors.Snippet != "" {
		if sn := s.Find(e.Selectors.Snippet).First(); sn.Length() > 0 {
			snippet = normalizeText(sn.Text())
		}
	}

	return storage.Result{Title: title, Link: link, Snippet: snippet}, nil
}

// nonRendered matches elements whose text never reaches the screen.
const nonRendered = "script, style, noscript, template"

// rendered returns a copy of s without non-rendered elements so Text only
// sees visible content. The live document is left untouched.
func rendered(s *goquery.Selection) *goquery.Selection {
	c := s.Clone()
	c.Find(nonRendered).Remove()
	return c
}

func resolveLink(base *url.URL, href string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	if base == nil {
		return u.String(), nil
	}
	return base.ResolveReference(u).String(), nil
}

// normalizeText collapses the whitespace runs left by markup into single spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
