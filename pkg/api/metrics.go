package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts requests by route and status code.
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tiltmaze_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tiltmaze_http_request_duration_seconds",
		Help:    "HTTP request duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// solveOutcomes counts solve requests by result.
	// Labels: "solved", "unsolvable", "invalid", "too_large", "timeout", "error"
	solveOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tiltmaze_solve_outcomes_total",
		Help: "Solve requests by outcome",
	}, []string{"outcome"})

	searchLabels = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tiltmaze_search_labels",
		Help:    "Labels created per walk search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	rejectedBusy = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tiltmaze_http_rejected_busy_total",
		Help: "Requests turned away by the concurrency limit",
	})
)
