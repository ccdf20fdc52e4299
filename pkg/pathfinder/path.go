package pathfinder

import (
	"fmt"

	"github.com/dd0wney/cluso-netresolve/pkg/graph"
)

// ErrMalformedGraph signals that the graph builder produced an
// inconsistent composition structure. It aborts the search that
// discovered it; it is never a normal filter rejection.
var ErrMalformedGraph = fmt.Errorf("malformed graph")

// Direction is the traversal direction of a single step, derived at
// search time from the edge and the node it was reached from.
type Direction int

const (
	// DirectionUp moves child → composition parent.
	DirectionUp Direction = iota
	// DirectionDown moves composition parent → child.
	DirectionDown
	// DirectionHorizontal crosses an interface-connection edge; the
	// hierarchy level never changes.
	DirectionHorizontal
)

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Step is one traversed edge of a path.
type Step struct {
	Edge      graph.Edge
	Direction Direction
	From      graph.NodeID
	To        graph.NodeID
}

// BFSPath is one candidate route from a start node to its current node.
// Extending a path always produces a new value; frontier branches never
// share mutable state, so the step and stack slices are copied with exact
// capacity on every extension.
type BFSPath struct {
	start graph.NodeID
	steps []Step

	// stack holds the composition edges of unmatched ascents. A descent
	// pops; the path is balanced (back at the start's nesting level)
	// exactly when the stack is empty.
	stack []graph.Edge

	// depth = number of ascents minus number of descents. Always equal
	// to len(stack) because descents below the start level are filtered
	// out before extension.
	depth int

	viaConditional bool
}

// startPath produces a zero-length path at node: empty stack, depth 0,
// no conditional edge used.
func startPath(node graph.NodeID) *BFSPath {
	return &BFSPath{start: node}
}

// Start returns the node the path began at.
func (p *BFSPath) Start() graph.NodeID { return p.start }

// Current returns the node the path has reached.
func (p *BFSPath) Current() graph.NodeID {
	if len(p.steps) == 0 {
		return p.start
	}
	return p.steps[len(p.steps)-1].To
}

// Steps returns the path's step sequence. Callers must not modify it.
func (p *BFSPath) Steps() []Step { return p.steps }

// Len returns the number of steps in the path.
func (p *BFSPath) Len() int { return len(p.steps) }

// Depth returns the net ascent count of the path.
func (p *BFSPath) Depth() int { return p.depth }

// ViaConditional reports whether any conditional edge was used anywhere
// along the path.
func (p *BFSPath) ViaConditional() bool { return p.viaConditional }

// Balanced reports whether the path has returned to the nesting level of
// its start node.
func (p *BFSPath) Balanced() bool { return len(p.stack) == 0 }

// stackEmpty reports whether the hierarchy stack is empty.
func (p *BFSPath) stackEmpty() bool { return len(p.stack) == 0 }

// containsNode reports whether id already appears in the path, start
// node included.
func (p *BFSPath) containsNode(id graph.NodeID) bool {
	if p.start == id {
		return true
	}
	for i := range p.steps {
		if p.steps[i].To == id {
			return true
		}
	}
	return false
}

// extend produces a new path with one more step. The input path is never
// mutated. An ascent pushes the composition edge onto the hierarchy
// stack; a descent pops it. Composition edges whose endpoints disagree
// with the node being left indicate an inconsistent graph and abort the
// search with ErrMalformedGraph.
//
// A descent must never be attempted on an empty stack; the hierarchy
// filter rejects such candidates before extension.
func (p *BFSPath) extend(edge graph.Edge, dir Direction) (*BFSPath, error) {
	cur := p.Current()

	next := &BFSPath{
		start:          p.start,
		depth:          p.depth,
		viaConditional: p.viaConditional || edge.Conditional,
	}

	var to graph.NodeID
	switch dir {
	case DirectionUp:
		if edge.Kind != graph.EdgeKindComposition || edge.Child != cur {
			return nil, fmt.Errorf("ascent over edge %d at node %d: edge names child %d: %w",
				edge.ID, cur, edge.Child, ErrMalformedGraph)
		}
		to = edge.Parent
		next.stack = make([]graph.Edge, len(p.stack)+1)
		copy(next.stack, p.stack)
		next.stack[len(p.stack)] = edge
		next.depth++
	case DirectionDown:
		if edge.Kind != graph.EdgeKindComposition || edge.Parent != cur {
			return nil, fmt.Errorf("descent over edge %d at node %d: edge names parent %d: %w",
				edge.ID, cur, edge.Parent, ErrMalformedGraph)
		}
		if len(p.stack) == 0 {
			return nil, fmt.Errorf("descent over edge %d at node %d with empty hierarchy stack: %w",
				edge.ID, cur, ErrMalformedGraph)
		}
		popped := p.stack[len(p.stack)-1]
		if popped.Kind != graph.EdgeKindComposition {
			return nil, fmt.Errorf("descent over edge %d at node %d popped non-composition edge %d: %w",
				edge.ID, cur, popped.ID, ErrMalformedGraph)
		}
		to = edge.Child
		next.stack = make([]graph.Edge, len(p.stack)-1)
		copy(next.stack, p.stack[:len(p.stack)-1])
		next.depth--
	case DirectionHorizontal:
		if edge.Kind != graph.EdgeKindInterfaceConnection {
			return nil, fmt.Errorf("horizontal move over edge %d at node %d: not an interface connection: %w",
				edge.ID, cur, ErrMalformedGraph)
		}
		to = edge.Other(cur)
		next.stack = make([]graph.Edge, len(p.stack))
		copy(next.stack, p.stack)
	default:
		return nil, fmt.Errorf("edge %d at node %d: unknown direction %d: %w",
			edge.ID, cur, dir, ErrMalformedGraph)
	}

	next.steps = make([]Step, len(p.steps)+1)
	copy(next.steps, p.steps)
	next.steps[len(p.steps)] = Step{Edge: edge, Direction: dir, From: cur, To: to}
	return next, nil
}
