package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-netresolve/pkg/graph"
	"github.com/dd0wney/cluso-netresolve/pkg/logging"
	"github.com/dd0wney/cluso-netresolve/pkg/metrics"
	"github.com/dd0wney/cluso-netresolve/pkg/netlist"
	"github.com/dd0wney/cluso-netresolve/pkg/pathfinder"
	"github.com/dd0wney/cluso-netresolve/pkg/validation"
)

func main() {
	graphFile := flag.String("graph", "", "Graph document (.yaml, or .snappy for compressed)")
	from := flag.String("from", "", "Comma-separated start node names")
	to := flag.String("to", "", "Comma-separated target node names (empty = all reachable)")
	maxPaths := flag.Uint64("max-paths", pathfinder.DefaultMaxPaths, "Path-count cap per search")
	showSteps := flag.Bool("steps", false, "Print every step of each result path")
	metricsAddr := flag.String("metrics", "", "Expose Prometheus metrics on this address (e.g. :9090)")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	if *graphFile == "" || *from == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(*logLevel))

	req := &validation.SearchRequest{
		Start:    splitNames(*from),
		Targets:  splitNames(*to),
		MaxPaths: *maxPaths,
	}
	if err := validation.ValidateSearchRequest(req); err != nil {
		log.Fatalf("Invalid request: %v", err)
	}

	doc, err := graph.LoadFile(*graphFile)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	if err := validation.ValidateDocument(doc); err != nil {
		log.Fatalf("Invalid graph document: %v", err)
	}
	g, ids, err := doc.Build()
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	registry := metrics.DefaultRegistry()
	registry.UpdateGraphMetrics(g.NodeCount(), g.EdgeCount())
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server failed", logging.Error(err))
			}
		}()
	}

	starts, err := resolveNames(ids, req.Start)
	if err != nil {
		log.Fatalf("Unknown start node: %v", err)
	}
	targets, err := resolveNames(ids, req.Targets)
	if err != nil {
		log.Fatalf("Unknown target node: %v", err)
	}

	opts := pathfinder.DefaultOptions()
	opts.Targets = targets
	opts.MaxPaths = req.MaxPaths
	opts.Logger = logger
	opts.Metrics = registry

	result, err := pathfinder.FindPaths(g, starts, opts)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	fmt.Printf("Search %s: %d result path(s), %d extension(s) explored\n",
		result.SearchID, len(result.Paths), result.PathsExplored)
	if result.Truncated {
		fmt.Println("WARNING: result set truncated by path-count cap")
	}

	for i, p := range result.Paths {
		flavor := "strong"
		if p.ViaConditional {
			flavor = "conditional"
		}
		fmt.Printf("  [%d] %s -> %s (%d hops, %s)\n",
			i, g.NodeName(p.Start), g.NodeName(p.End), len(p.Steps), flavor)
		if *showSteps {
			for _, s := range p.Steps {
				fmt.Printf("        %-10s %s -> %s\n",
					s.Direction, g.NodeName(s.From), g.NodeName(s.To))
			}
		}
	}

	fmt.Println("\nResolved connections:")
	for _, conn := range netlist.ResolvePairs(result) {
		flavor := "strong"
		if conn.ViaConditional {
			flavor = "conditional"
		}
		fmt.Printf("  %s <-> %s (%s, %d hops)\n",
			g.NodeName(conn.A), g.NodeName(conn.B), flavor, conn.Hops)
	}
}

func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func resolveNames(ids map[string]graph.NodeID, names []string) ([]graph.NodeID, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]graph.NodeID, 0, len(names))
	for _, name := range names {
		id, ok := ids[name]
		if !ok {
			return nil, fmt.Errorf("%q is not declared in the graph document", name)
		}
		out = append(out, id)
	}
	return out, nil
}
