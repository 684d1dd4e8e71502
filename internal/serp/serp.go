package serp

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/andybalholm/cascadia"
)

// DefaultBaseURL is the search endpoint queried when none is configured.
const DefaultBaseURL = "https://www.google.com/search"

var (
	// ErrExtractionTimeout means no result container appeared before the
	// deadline. Run recovers from it and reports an empty extraction.
	ErrExtractionTimeout = errors.New("serp: no result containers before deadline")

	// ErrMissingField means a result container lacked its heading or link.
	// The container is skipped and the batch continues.
	ErrMissingField = errors.New("serp: result container missing required field")
)

// Page abstracts the browser session the extractor drives. Implementations
// may be a real browser or a canned set of documents in tests.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Location(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
}

// Selectors is the lookup table binding extraction to the search engine's
// markup. Title, Link and Snippet are evaluated inside each Container.
// An empty Snippet selector disables snippets.
type Selectors struct {
	Container string `yaml:"container"`
	Title     string `yaml:"title"`
	Link      string `yaml:"link"`
	Snippet   string `yaml:"snippet"`
}

// DefaultSelectors matches Google's organic result markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Container: "div.g",
		Title:     "h3",
		Link:      "a",
		Snippet:   "div.VwiC3b",
	}
}

// Validate compiles every selector so broken markup rules surface at
// startup rather than as a silent empty result set.
func (s Selectors) Validate() error {
	var errs []error

	check := func(name, sel string, required bool) {
		if sel == "" {
			if required {
				errs = append(errs, fmt.Errorf("selectors.%s is required", name))
			}
			return
		}
		if _, err := cascadia.Compile(sel); err != nil {
			errs = append(errs, fmt.Errorf("selectors.%s %q: %w", name, sel, err))
		}
	}

	check("container", s.Container, true)
	check("title", s.Title, true)
	check("link", s.Link, true)
	check("snippet", s.Snippet, false)

	return errors.Join(errs...)
}

// QueryURL returns base with query form-encoded into the q parameter.
// Spaces become '+' and reserved characters are percent-escaped. Existing
// parameters on base are kept.
func QueryURL(base, query string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid base url %q: scheme and host are required", base)
	}

	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
