package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/FranksOps/serpscrape/internal/serp"
)

// Validate checks the configuration for required fields and valid values.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if _, err := serp.QueryURL(c.Search.BaseURL, ""); err != nil {
		errs = append(errs, fmt.Errorf("search.base_url: %w", err))
	}
	if c.Search.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("search.max_results must be > 0, got %d", c.Search.MaxResults))
	}
	if c.Search.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("search.timeout must be > 0, got %s", c.Search.Timeout))
	}
	if c.Search.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("search.poll_interval must be > 0, got %s", c.Search.PollInterval))
	}
	if err := c.Search.Selectors.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("search: %w", err))
	}

	if c.Output.Path == "" {
		errs = append(errs, errors.New("output.path is required"))
	}
	switch c.Output.ResolvedFormat() {
	case FormatCSV, FormatJSON, FormatXLSX:
		// valid
	default:
		errs = append(errs, fmt.Errorf("output.format must be \"csv\", \"json\" or \"xlsx\", got %q", c.Output.Format))
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
		// valid
	default:
		errs = append(errs, fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
