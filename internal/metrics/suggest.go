package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RetrievalFallbackTotal counts primary ranked-search failures that
	// degraded to the substring fallback, per collection.
	RetrievalFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sukhan",
			Name:      "retrieval_fallback_total",
			Help:      "Ranked-search failures degraded to the substring fallback",
		},
		[]string{"collection"},
	)

	// SuggestDegradedTotal counts suggestion requests where both
	// collections failed at the fallback tier too.
	SuggestDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sukhan",
			Name:      "suggest_degraded_total",
			Help:      "Suggestion requests answered with a soft empty result",
		},
	)

	// SuggestResultCount observes how many suggestions a request returned.
	SuggestResultCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sukhan",
			Name:      "suggest_results",
			Help:      "Suggestions returned per request",
			Buckets:   []float64{0, 1, 2, 3, 5, 7, 10},
		},
	)
)

var registerSuggestOnce sync.Once

// RegisterSuggestMetrics registers the suggestion-path metrics.
// Explicit (no init()) so tests can exercise the counters unregistered.
func RegisterSuggestMetrics() {
	registerSuggestOnce.Do(func() {
		prometheus.MustRegister(RetrievalFallbackTotal)
		prometheus.MustRegister(SuggestDegradedTotal)
		prometheus.MustRegister(SuggestResultCount)
	})
}
