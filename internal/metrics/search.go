package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search and keyword suggestion metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodcat",
			Name:      "search_requests_total",
			Help:      "Total number of product searches",
		},
		[]string{"surface", "status"}, // surface: cli, http, mcp; status: ok, error
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prodcat",
			Name:      "search_duration_seconds",
			Help:      "Product search duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"surface"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prodcat",
			Name:      "search_results",
			Help:      "Number of products returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"surface"},
	)

	KeywordSuggestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodcat",
			Name:      "keyword_suggestions_total",
			Help:      "Keyword suggestion requests by strategy and outcome",
		},
		[]string{"strategy", "result"}, // result: keywords, empty
	)
)

func init() {
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(KeywordSuggestionsTotal)
}

// ObserveSearch records one search executed through surface.
func ObserveSearch(surface string, elapsed time.Duration, results int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	SearchRequestsTotal.WithLabelValues(surface, status).Inc()
	SearchDuration.WithLabelValues(surface).Observe(elapsed.Seconds())
	if err == nil {
		SearchResults.WithLabelValues(surface).Observe(float64(results))
	}
}

// ObserveKeywords records one keyword suggestion.
func ObserveKeywords(strategy string, count int) {
	result := "keywords"
	if count == 0 {
		result = "empty"
	}
	KeywordSuggestionsTotal.WithLabelValues(strategy, result).Inc()
}
