package metrics

import (
	"time"
)

// RecordSearch records one completed search with its terminal status
// ("exhausted", "truncated", "cancelled" or "error").
func (r *Registry) RecordSearch(status string, duration time.Duration, pathsExplored uint64, results int) {
	r.SearchesTotal.WithLabelValues(status).Inc()
	r.SearchDuration.WithLabelValues(status).Observe(duration.Seconds())
	r.PathsExplored.Observe(float64(pathsExplored))
	r.ResultsPerSearch.Observe(float64(results))

	if status == "truncated" {
		r.TruncationsTotal.Inc()
	}
}

// RecordFilterRejections adds the per-filter rejection counts of one
// search.
func (r *Registry) RecordFilterRejections(counts map[string]uint64) {
	for filter, n := range counts {
		r.FilterRejectionsTotal.WithLabelValues(filter).Add(float64(n))
	}
}

// UpdateGraphMetrics publishes the size of the loaded graph.
func (r *Registry) UpdateGraphMetrics(nodes, edges int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
}
