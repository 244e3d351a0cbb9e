// Package metrics exposes Prometheus instrumentation for the resolution
// engine: how often references are claimed, how many resolutions the
// per-pass cache absorbs, and how backend fetches end.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels a completed backend fetch.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeClientError  Outcome = "client_error"
	OutcomeBackendError Outcome = "backend_error"
	OutcomeCorruption   Outcome = "corruption"
	OutcomeUnexpected   Outcome = "unexpected"
)

var (
	cacheHitsTotal prometheus.Counter
	fetchTotal     *prometheus.CounterVec
	fetchDuration  prometheus.Histogram

	registerOnce sync.Once
)

// register lazily registers all metrics on the default registry. Recording
// functions call it so callers need no explicit init.
func register() {
	registerOnce.Do(func() {
		cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "secretsource_cache_hits_total",
			Help: "Resolutions served from the per-pass cache without a backend call",
		})

		fetchTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "secretsource_fetch_total",
				Help: "Backend fetch attempts by outcome",
			},
			[]string{"outcome"},
		)

		fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "secretsource_fetch_duration_seconds",
			Help:    "Duration of backend fetches in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		})
	})
}

// RecordCacheHit counts a resolution answered from the cache.
func RecordCacheHit() {
	register()
	cacheHitsTotal.Inc()
}

// FetchTimer tracks one backend fetch from start to outcome.
type FetchTimer struct {
	start time.Time
	once  sync.Once
}

// StartFetch begins timing a backend fetch.
func StartFetch() *FetchTimer {
	register()
	return &FetchTimer{start: time.Now()}
}

// Done records the fetch outcome and duration. Safe to call once per timer;
// extra calls are ignored.
func (t *FetchTimer) Done(outcome Outcome) {
	t.once.Do(func() {
		fetchTotal.WithLabelValues(string(outcome)).Inc()
		fetchDuration.Observe(time.Since(t.start).Seconds())
	})
}
