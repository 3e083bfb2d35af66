// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalyzeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyze_requests_total",
			Help: "Total number of analyze requests by response status",
		},
		[]string{"status"},
	)

	AnalyzeRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "analyze_request_duration_seconds",
			Help: "Duration of analyze request handling in seconds",
		},
	)

	UpstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_calls_total",
			Help: "Total number of chat-completion upstream calls by outcome",
		},
		[]string{"outcome"},
	)

	FallbackResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_responses_total",
			Help: "Total number of responses served from the static fallback",
		},
		[]string{"reason"},
	)

	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of result cache operations",
		},
		[]string{"op", "result"},
	)
)
