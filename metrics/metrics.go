// Package metrics holds the Prometheus collectors for graph builds and
// path queries. Collectors are registered on the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeFound   = "found"
	OutcomeNoPath  = "no_path"
	OutcomeInvalid = "invalid"
	OutcomeOK      = "ok"
	OutcomeError   = "error"
)

var (
	// PathQueries counts shortest-path queries by strategy and outcome
	PathQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_path_queries_total",
			Help: "Total number of shortest-path queries",
		},
		[]string{"strategy", "outcome"},
	)

	// NodesExpanded tracks how many nodes each query settled before stopping
	NodesExpanded = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waypoint_path_nodes_expanded",
			Help:    "Nodes settled per shortest-path query",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"strategy"},
	)

	// GraphBuilds counts weight-table builds (startup and hot reloads)
	GraphBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_graph_builds_total",
			Help: "Total number of waypoint graph builds",
		},
		[]string{"outcome"},
	)

	// GraphBuildDuration measures level load plus weight-table construction
	GraphBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "waypoint_graph_build_duration_seconds",
			Help:    "Duration of waypoint graph builds in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)

	// GraphNodes is the node count of the graph currently in use
	GraphNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "waypoint_graph_nodes",
			Help: "Number of waypoints in the active graph",
		},
	)
)

// ObserveQuery records one path query
func ObserveQuery(strategy, outcome string, expanded int) {
	PathQueries.WithLabelValues(strategy, outcome).Inc()
	if outcome != OutcomeInvalid {
		NodesExpanded.WithLabelValues(strategy).Observe(float64(expanded))
	}
}
