package pipeline

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records conversion statistics in its own registry so several
// pipelines (and tests) never collide on the default one.
type Metrics struct {
	reg *prometheus.Registry

	runsTotal     *prometheus.CounterVec
	runDuration   prometheus.Histogram
	stageDuration *prometheus.HistogramVec
	regionsTotal  *prometheus.CounterVec
	spansTotal    *prometheus.CounterVec
}

// NewMetrics creates the collectors in a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		runsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markscan_runs_total",
				Help: "Total number of conversions",
			},
			[]string{"status"}, // status: ok, unreadable, error
		),
		runDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "markscan_run_duration_seconds",
				Help:    "End-to-end conversion duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 25, 50},
			},
		),
		stageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "markscan_stage_duration_seconds",
				Help:    "Duration of each pipeline stage in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"stage"}, // stage: detection, extraction, correlation, write
		),
		regionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markscan_highlight_regions_total",
				Help: "Total number of highlight regions detected",
			},
			[]string{"color"},
		),
		spansTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markscan_spans_total",
				Help: "Total number of text spans written, by highlight colour",
			},
			[]string{"color"}, // color: yellow, green, none
		),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Observe records one run. res is nil when the run failed.
func (m *Metrics) Observe(res *Result, err error, d time.Duration) {
	if m == nil {
		return
	}
	switch {
	case err == nil:
		m.runsTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, ErrInputUnreadable):
		m.runsTotal.WithLabelValues("unreadable").Inc()
	default:
		m.runsTotal.WithLabelValues("error").Inc()
	}
	m.runDuration.Observe(d.Seconds())
	if res == nil {
		return
	}

	stages := map[string]int64{
		"detection":   res.Processing.DetectionNs,
		"extraction":  res.Processing.ExtractionNs,
		"correlation": res.Processing.CorrelationNs,
		"write":       res.Processing.WriteNs,
	}
	for stage, ns := range stages {
		m.stageDuration.WithLabelValues(stage).Observe(time.Duration(ns).Seconds())
	}
	for _, r := range res.Regions {
		m.regionsTotal.WithLabelValues(r.Color.String()).Inc()
	}
	for c, n := range res.Counts() {
		m.spansTotal.WithLabelValues(c.String()).Add(float64(n))
	}
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
