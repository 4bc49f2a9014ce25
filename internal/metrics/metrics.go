// Package metrics defines the Prometheus instruments of the haiku server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "haiku"

// Metrics groups the server's instruments.
type Metrics struct {
	// Poems counts successfully generated poems.
	Poems prometheus.Counter
	// Failures counts failed generations by reason: exhausted, empty,
	// cancelled.
	Failures *prometheus.CounterVec
	// Attempts observes the whole-poem attempts each success took.
	Attempts prometheus.Histogram
	// Duration observes generation latency in seconds.
	Duration prometheus.Histogram
	// LexiconWords reports the size of the served lexicon.
	LexiconWords prometheus.Gauge
	// LexiconReloads counts lexicon swaps after a file change.
	LexiconReloads prometheus.Counter
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Poems: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poems_generated_total",
			Help:      "Poems generated successfully.",
		}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_failures_total",
			Help:      "Generations that returned no poem, by reason.",
		}, []string{"reason"}),
		Attempts: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_attempts",
			Help:      "Whole-poem attempts needed per generated poem.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
		}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent generating one poem.",
			Buckets:   prometheus.DefBuckets,
		}),
		LexiconWords: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lexicon_words",
			Help:      "Words in the served lexicon.",
		}),
		LexiconReloads: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lexicon_reloads_total",
			Help:      "Lexicon reloads after a file change.",
		}),
	}
}
