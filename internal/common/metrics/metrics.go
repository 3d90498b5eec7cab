// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itinerary_requests_total",
			Help: "Total number of pipeline requests by operation",
		},
		[]string{"operation", "status"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_stage_duration_seconds",
			Help: "Duration of each pipeline stage in seconds",
		},
		[]string{"stage"},
	)

	StageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stage_failures_total",
			Help: "Total number of stage failures by error category",
		},
		[]string{"stage", "category"},
	)

	SearchFanout = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "search_fanout_inflight",
			Help: "Number of in-flight category search calls",
		},
		[]string{"category"},
	)
)
