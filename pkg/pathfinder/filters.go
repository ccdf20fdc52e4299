package pathfinder

import (
	"github.com/dd0wney/cluso-netresolve/pkg/graph"
)

// Filter names, used as keys in Result.FilterRejections and as the
// "filter" label on rejection metrics.
const (
	FilterPathCount      = "path_count"
	FilterEdgeKind       = "edge_kind"
	FilterSiblingJump    = "sibling_jump"
	FilterHierarchyStack = "hierarchy_stack"
	FilterEndNode        = "end_node"
	FilterCycle          = "cycle"
	FilterVisited        = "visited"
)

// candidate is one proposed extension of a frontier path, built per
// incident edge before any filtering.
type candidate struct {
	path *BFSPath
	edge graph.Edge
	dir  Direction
	dest graph.NodeID
}

// viaConditional reports the flag the extended path would carry.
func (c candidate) viaConditional() bool {
	return c.path.viaConditional || c.edge.Conditional
}

// filter is one predicate of the ordered pipeline. Returning false
// discards the candidate; this is expected, silent pruning.
type filter struct {
	name string
	fn   func(*search, candidate) bool
}

// pipeline returns the ordered discovery filters. The end-node filter is
// not part of this list: it applies at result-emission time only.
func pipeline() []filter {
	return []filter{
		{FilterPathCount, (*search).filterPathCount},
		{FilterEdgeKind, (*search).filterEdgeKind},
		{FilterSiblingJump, (*search).filterSiblingJump},
		{FilterHierarchyStack, (*search).filterHierarchyStack},
	}
}

// filterPathCount is the global explosion guard. It counts every
// candidate extension of the whole search; exceeding the cap terminates
// the search early with a truncated result set.
func (s *search) filterPathCount(c candidate) bool {
	s.pathCount++
	if s.pathCount > s.maxPaths {
		s.truncated = true
		return false
	}
	return true
}

// filterEdgeKind rejects edges that are neither composition nor
// interface-connection edges.
func (s *search) filterEdgeKind(c candidate) bool {
	switch c.edge.Kind {
	case graph.EdgeKindComposition, graph.EdgeKindInterfaceConnection:
		return true
	default:
		return false
	}
}

// filterSiblingJump rejects a child→parent→child hop through the same
// parent realized by two consecutive composition edges. Such a hop has
// no electrical meaning.
func (s *search) filterSiblingJump(c candidate) bool {
	if c.dir != DirectionDown || c.edge.Kind != graph.EdgeKindComposition {
		return true
	}
	steps := c.path.Steps()
	if len(steps) == 0 {
		return true
	}
	last := steps[len(steps)-1]
	if last.Direction == DirectionUp &&
		last.Edge.Kind == graph.EdgeKindComposition &&
		last.Edge.Parent == c.edge.Parent {
		return false
	}
	return true
}

// filterHierarchyStack enforces, in order: no descent on an empty
// hierarchy stack (no descent below the start level before any ascent),
// then shallow-link visibility: a shallow edge may only be crossed while
// the path's net depth is zero or below, i.e. the start node is at the
// link's level or closer to the root.
func (s *search) filterHierarchyStack(c candidate) bool {
	if c.dir == DirectionDown && c.path.stackEmpty() {
		return false
	}
	if c.edge.Kind == graph.EdgeKindInterfaceConnection && c.edge.Shallow && c.path.Depth() > 0 {
		return false
	}
	return true
}

// matchesTarget is the end-node filter, applied at emission time only.
// An empty target set makes every balanced path eligible.
func (s *search) matchesTarget(id graph.NodeID) bool {
	if len(s.targets) == 0 {
		return true
	}
	_, ok := s.targets[id]
	return ok
}
