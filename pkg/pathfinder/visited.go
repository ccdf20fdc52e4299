package pathfinder

import (
	"github.com/dd0wney/cluso-netresolve/pkg/graph"
)

// VisitInfo records how a node was best reached so far within one search:
// via a conditional (weak) edge somewhere along the path, or not
// (strong). Scoped to a single search invocation.
type VisitInfo struct {
	ViaConditional bool
}

// admit consults the tracker for a candidate's destination and applies
// the override semantics:
//
//   - unvisited: record and admit
//   - recorded weak, new path strong: overwrite to strong and admit
//   - recorded strong: reject, regardless of the new path's flag
//   - recorded weak, new path weak: reject, no improvement
//
// Cycle prevention is handled by the caller before admit and takes
// precedence over override logic.
func (s *search) admit(dest graph.NodeID, viaConditional bool) bool {
	info, ok := s.visited[dest]
	if !ok {
		s.visited[dest] = &VisitInfo{ViaConditional: viaConditional}
		return true
	}
	if info.ViaConditional && !viaConditional {
		info.ViaConditional = false
		return true
	}
	return false
}
