package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSearchMetrics() {
	r.SearchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netresolve_searches_total",
			Help: "Total number of connectivity searches executed",
		},
		[]string{"status"},
	)

	r.SearchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netresolve_search_duration_seconds",
			Help:    "Connectivity search duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"status"},
	)

	r.PathsExplored = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netresolve_paths_explored",
			Help:    "Number of candidate path extensions examined per search",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		},
	)

	r.ResultsPerSearch = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netresolve_results_per_search",
			Help:    "Number of result paths returned per search",
			Buckets: []float64{1, 2, 5, 10, 50, 100, 1000},
		},
	)

	r.TruncationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netresolve_truncations_total",
			Help: "Total number of searches truncated by the path-count cap",
		},
	)

	r.FilterRejectionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netresolve_filter_rejections_total",
			Help: "Candidate extensions rejected, by filter",
		},
		[]string{"filter"},
	)
}

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netresolve_graph_nodes_total",
			Help: "Number of nodes in the loaded graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netresolve_graph_edges_total",
			Help: "Number of edges in the loaded graph",
		},
	)
}
