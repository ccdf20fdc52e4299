// Package pathfinder discovers which pairs of interfaces in a
// hierarchical containment graph are electrically connected. It runs a
// filtered breadth-first search over composition and interface-connection
// edges: ascents and descents must balance, shallow links are only
// visible from their own level or above, conditional (weak) links can be
// superseded by strong ones, and a global path-count cap guards against
// combinatorial explosion.
//
// The graph is read-only for the duration of a search, so independent
// searches may run concurrently against the same graph; each owns its
// frontier and visited map in full.
package pathfinder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-netresolve/pkg/graph"
	"github.com/dd0wney/cluso-netresolve/pkg/logging"
	"github.com/dd0wney/cluso-netresolve/pkg/metrics"
)

// DefaultMaxPaths is the default global path-count cap.
const DefaultMaxPaths = 1_000_000

// Options configures one connectivity search.
type Options struct {
	// Targets restricts result emission to these nodes. Empty means
	// every balanced path discovered is a result.
	Targets []graph.NodeID
	// MaxPaths overrides the global path-count cap. 0 uses
	// DefaultMaxPaths.
	MaxPaths uint64
	// Logger receives search lifecycle events. nil discards them.
	Logger logging.Logger
	// Metrics, when set, receives per-search observations.
	Metrics *metrics.Registry
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{MaxPaths: DefaultMaxPaths}
}

// Path is one discovered connection between Start and End.
type Path struct {
	Start          graph.NodeID
	End            graph.NodeID
	Steps          []Step
	ViaConditional bool
}

// Result is the outcome of one search invocation. Paths are in discovery
// order; the order is deterministic for a fixed graph.
type Result struct {
	// SearchID correlates the result with the search's log entries.
	SearchID string
	Paths    []Path
	// Truncated reports that the path-count cap terminated the search
	// early and the result set is partial. Not an error.
	Truncated bool
	// PathsExplored is the number of candidate extensions examined.
	PathsExplored uint64
	// FilterRejections counts discarded candidates per filter name.
	FilterRejections map[string]uint64
}

// search is the per-invocation state. Nothing in it outlives the call.
type search struct {
	view    graph.View
	targets map[graph.NodeID]struct{}

	maxPaths  uint64
	pathCount uint64
	truncated bool

	visited map[graph.NodeID]*VisitInfo
	filters []filter
	rejects map[string]uint64

	results []Path
}

// FindPaths runs a connectivity search from the given start nodes.
func FindPaths(view graph.View, starts []graph.NodeID, opts Options) (*Result, error) {
	return FindPathsContext(context.Background(), view, starts, opts)
}

// FindPathsContext is FindPaths with cooperative cancellation: ctx is
// polled between frontier dequeues. On cancellation the results found so
// far are returned together with the context's error.
func FindPathsContext(ctx context.Context, view graph.View, starts []graph.NodeID, opts Options) (*Result, error) {
	if len(starts) == 0 {
		return nil, fmt.Errorf("at least one start node required")
	}
	for _, id := range starts {
		if !view.HasNode(id) {
			return nil, fmt.Errorf("start node %d: %w", id, graph.ErrNodeNotFound)
		}
	}
	for _, id := range opts.Targets {
		if !view.HasNode(id) {
			return nil, fmt.Errorf("target node %d: %w", id, graph.ErrNodeNotFound)
		}
	}

	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	searchID := uuid.New().String()
	log = log.With(logging.String("search_id", searchID))

	maxPaths := opts.MaxPaths
	if maxPaths == 0 {
		maxPaths = DefaultMaxPaths
	}

	s := &search{
		view:     view,
		targets:  make(map[graph.NodeID]struct{}, len(opts.Targets)),
		maxPaths: maxPaths,
		visited:  make(map[graph.NodeID]*VisitInfo),
		filters:  pipeline(),
		rejects:  make(map[string]uint64),
	}
	for _, id := range opts.Targets {
		s.targets[id] = struct{}{}
	}

	timer := logging.StartTimer(log, "search finished",
		logging.Int("starts", len(starts)),
		logging.Int("targets", len(opts.Targets)),
	)
	started := time.Now()

	runErr := s.run(ctx, starts)

	status := "exhausted"
	switch {
	case runErr != nil && ctx.Err() != nil:
		status = "cancelled"
	case runErr != nil:
		status = "error"
	case s.truncated:
		status = "truncated"
	}

	if runErr != nil && ctx.Err() == nil {
		timer.EndError(runErr)
	} else {
		timer.End(
			logging.String("status", status),
			logging.Uint64("paths_explored", s.pathCount),
			logging.Int("results", len(s.results)),
		)
	}

	if opts.Metrics != nil {
		opts.Metrics.RecordSearch(status, time.Since(started), s.pathCount, len(s.results))
		opts.Metrics.RecordFilterRejections(s.rejects)
	}

	if runErr != nil && ctx.Err() == nil {
		// Malformed graph: upstream bug, never swallowed.
		return nil, runErr
	}

	result := &Result{
		SearchID:         searchID,
		Paths:            s.results,
		Truncated:        s.truncated,
		PathsExplored:    s.pathCount,
		FilterRejections: s.rejects,
	}
	return result, runErr
}

// run seeds the frontier and drives the BFS to a terminal state:
// exhausted (frontier empty), truncated (cap tripped) or aborted
// (malformed graph or cancellation).
//
// Result emission is emit-and-continue: a balanced path is emitted and
// stays in the frontier, so a later strong path can still override an
// earlier weak visit at the same node.
func (s *search) run(ctx context.Context, starts []graph.NodeID) error {
	var frontier []*BFSPath

	for _, id := range starts {
		p := startPath(id)
		s.visited[id] = &VisitInfo{ViaConditional: false}
		// A node is trivially connected to itself: the zero-length path
		// is balanced and eligible for emission.
		if s.matchesTarget(id) {
			s.emit(p)
		}
		frontier = append(frontier, p)
	}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		p := frontier[0]
		frontier = frontier[1:]

		for _, c := range s.candidates(p) {
			if !s.runFilters(c) {
				if s.truncated {
					return nil
				}
				continue
			}

			// Cycle prevention takes precedence over override logic.
			if c.path.containsNode(c.dest) {
				s.rejects[FilterCycle]++
				continue
			}

			if !s.admit(c.dest, c.viaConditional()) {
				s.rejects[FilterVisited]++
				continue
			}

			next, err := c.path.extend(c.edge, c.dir)
			if err != nil {
				return err
			}

			frontier = append(frontier, next)

			if next.Balanced() {
				if s.matchesTarget(next.Current()) {
					s.emit(next)
				} else {
					s.rejects[FilterEndNode]++
				}
			}
		}
	}

	return nil
}

// candidates builds one proposed extension per edge incident to the
// path's current node, in deterministic order: the composition parent
// edge, then child edges and connection edges in insertion order.
func (s *search) candidates(p *BFSPath) []candidate {
	cur := p.Current()
	var out []candidate

	if e, ok := s.view.ParentEdge(cur); ok {
		out = append(out, candidate{path: p, edge: e, dir: DirectionUp, dest: e.Parent})
	}
	for _, e := range s.view.ChildEdges(cur) {
		out = append(out, candidate{path: p, edge: e, dir: DirectionDown, dest: e.Child})
	}
	for _, e := range s.view.ConnectionEdges(cur) {
		out = append(out, candidate{path: p, edge: e, dir: DirectionHorizontal, dest: e.Other(cur)})
	}
	return out
}

// runFilters applies the ordered pipeline to one candidate. Rejections
// are counted, never logged: they are the normal pruning mechanism.
func (s *search) runFilters(c candidate) bool {
	for _, f := range s.filters {
		if !f.fn(s, c) {
			s.rejects[f.name]++
			return false
		}
	}
	return true
}

func (s *search) emit(p *BFSPath) {
	steps := make([]Step, len(p.Steps()))
	copy(steps, p.Steps())
	s.results = append(s.results, Path{
		Start:          p.Start(),
		End:            p.Current(),
		Steps:          steps,
		ViaConditional: p.ViaConditional(),
	})
}
