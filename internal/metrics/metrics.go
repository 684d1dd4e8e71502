package metrics

import (
	"fmt"

	"github.com/FranksOps/serpscrape/internal/serp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeSaved   = "saved"
	OutcomeEmpty   = "empty"
	OutcomeTimeout = "timeout"
	OutcomeFailed  = "failed"
)

// Recorder holds the collectors for a single run. Each Recorder owns its
// registry so repeated programmatic runs never collide on registration.
type Recorder struct {
	reg *prometheus.Registry

	RunsTotal          *prometheus.CounterVec
	ResultsTotal       prometheus.Counter
	SkippedTotal       prometheus.Counter
	ChallengesTotal    *prometheus.CounterVec
	ExtractionDuration prometheus.Histogram
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		reg: reg,
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serpscrape_runs_total",
				Help: "Total number of search runs by outcome",
			},
			[]string{"outcome"},
		),
		ResultsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "serpscrape_results_total",
			Help: "Total number of search results extracted",
		}),
		SkippedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "serpscrape_skipped_containers_total",
			Help: "Total number of result containers skipped for a missing field",
		}),
		ChallengesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serpscrape_challenges_total",
				Help: "Total number of interstitial pages detected while polling",
			},
			[]string{"source"},
		),
		ExtractionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "serpscrape_extraction_duration_seconds",
			Help:    "Time from navigation to extracted results in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
		}),
	}
}

// RecordExtraction updates the metrics given an extraction.
func (r *Recorder) RecordExtraction(ex serp.Extraction) {
	r.ResultsTotal.Add(float64(len(ex.Results)))
	r.SkippedTotal.Add(float64(ex.Skipped))
	r.ExtractionDuration.Observe(ex.Elapsed.Seconds())
	if ex.Challenge != "" {
		r.ChallengesTotal.WithLabelValues(ex.Challenge).Inc()
	}
}

// RecordRun counts one run with the given outcome.
func (r *Recorder) RecordRun(outcome string) {
	r.RunsTotal.WithLabelValues(outcome).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile writes all metrics to path in the Prometheus text format,
// suitable for node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
