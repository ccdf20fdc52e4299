package graph

// View is the read-only contract the pathfinder consumes. A *Graph
// satisfies it; tests may substitute their own implementation.
type View interface {
	// HasNode reports whether id names a node in the graph.
	HasNode(id NodeID) bool
	// NodeName returns the display name of a node, or "" for unknown ids.
	NodeName(id NodeID) string
	// ParentEdge returns the composition edge to id's parent, if any.
	ParentEdge(id NodeID) (Edge, bool)
	// ChildEdges returns id's composition edges to its children, in
	// insertion order.
	ChildEdges(id NodeID) []Edge
	// ConnectionEdges returns the interface-connection edges incident to
	// id, in insertion order.
	ConnectionEdges(id NodeID) []Edge
}

// HasNode reports whether id names a node in the graph.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeName returns the display name of a node, or "" for unknown ids.
func (g *Graph) NodeName(id NodeID) string {
	n, ok := g.nodes[id]
	if !ok {
		return ""
	}
	return n.name
}

// ParentEdge returns the composition edge to id's parent, if any.
func (g *Graph) ParentEdge(id NodeID) (Edge, bool) {
	n, ok := g.nodes[id]
	if !ok || n.parentEdge == 0 {
		return Edge{}, false
	}
	return *g.edges[n.parentEdge], true
}

// ChildEdges returns id's composition edges to its children, in
// insertion order. The returned slice is owned by the caller.
func (g *Graph) ChildEdges(id NodeID) []Edge {
	n, ok := g.nodes[id]
	if !ok || len(n.childEdges) == 0 {
		return nil
	}
	out := make([]Edge, 0, len(n.childEdges))
	for _, eid := range n.childEdges {
		out = append(out, *g.edges[eid])
	}
	return out
}

// ConnectionEdges returns the interface-connection edges incident to id,
// in insertion order. The returned slice is owned by the caller.
func (g *Graph) ConnectionEdges(id NodeID) []Edge {
	n, ok := g.nodes[id]
	if !ok || len(n.connEdges) == 0 {
		return nil
	}
	out := make([]Edge, 0, len(n.connEdges))
	for _, eid := range n.connEdges {
		out = append(out, *g.edges[eid])
	}
	return out
}

// Parent returns the composition parent of id, if any.
func (g *Graph) Parent(id NodeID) (NodeID, bool) {
	e, ok := g.ParentEdge(id)
	if !ok {
		return 0, false
	}
	return e.Parent, true
}

// Children returns the composition children of id in insertion order.
func (g *Graph) Children(id NodeID) []NodeID {
	edges := g.ChildEdges(id)
	if len(edges) == 0 {
		return nil
	}
	out := make([]NodeID, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.Child)
	}
	return out
}
