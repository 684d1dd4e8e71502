// Package config provides configuration for the serpscrape CLI.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (explicit path, or ./serpscrape.yaml when present)
//  3. Validation
package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/FranksOps/serpscrape/internal/browser"
	"github.com/FranksOps/serpscrape/internal/serp"
)

// DefaultFile is the config file picked up from the working directory.
const DefaultFile = "serpscrape.yaml"

// Output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// Config holds all configuration for a run.
type Config struct {
	Search  SearchConfig    `yaml:"search"`
	Browser browser.Options `yaml:"browser"`
	Output  OutputConfig    `yaml:"output"`
	Log     LogConfig       `yaml:"log"`
	Metrics MetricsConfig   `yaml:"metrics"`
}

// SearchConfig holds the query endpoint, extraction bounds and the selector
// table binding extraction to the engine's markup.
type SearchConfig struct {
	BaseURL      string         `yaml:"base_url"`      // default: https://www.google.com/search
	MaxResults   int            `yaml:"max_results"`   // default: 10
	Timeout      time.Duration  `yaml:"timeout"`       // default: 10s
	PollInterval time.Duration  `yaml:"poll_interval"` // default: 500ms
	Selectors    serp.Selectors `yaml:"selectors"`
}

// OutputConfig holds the exporter settings.
type OutputConfig struct {
	Path   string `yaml:"path"`   // default: google_results.csv
	Format string `yaml:"format"` // "csv", "json", "xlsx"; empty infers from path
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // default: "warn"
	Format string `yaml:"format"` // "text" or "json", default: "text"
}

// MetricsConfig holds Prometheus textfile settings.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // empty disables
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Search: SearchConfig{
			BaseURL:      serp.DefaultBaseURL,
			MaxResults:   serp.DefaultMaxResults,
			Timeout:      serp.DefaultTimeout,
			PollInterval: serp.DefaultPollInterval,
			Selectors:    serp.DefaultSelectors(),
		},
		Browser: browser.DefaultOptions(),
		Output: OutputConfig{
			Path: "google_results.csv",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// ResolvedFormat returns the explicit format, or one inferred from the
// path's extension. Unknown extensions fall back to CSV.
func (o OutputConfig) ResolvedFormat() string {
	if o.Format != "" {
		return strings.ToLower(o.Format)
	}
	switch strings.ToLower(filepath.Ext(o.Path)) {
	case ".json", ".ndjson", ".jsonl":
		return FormatJSON
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// SlogLevel parses Level, defaulting to warn when it is unrecognized.
func (l LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
