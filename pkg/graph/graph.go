package graph

import (
	"fmt"
)

var (
	ErrNodeNotFound = fmt.Errorf("node not found")
	ErrEdgeNotFound = fmt.Errorf("edge not found")
	ErrHasParent    = fmt.Errorf("node already has a composition parent")
	ErrSelfEdge     = fmt.Errorf("edge endpoints must differ")
)

// NodeID is the stable identity of a node in the containment graph.
// IDs are assigned by the builder and never reused within one graph.
type NodeID uint64

// EdgeKind discriminates the two edge families the pathfinder understands.
type EdgeKind int

const (
	// EdgeKindComposition is a structural parent/child containment edge.
	EdgeKindComposition EdgeKind = iota
	// EdgeKindInterfaceConnection is an electrical/logical link between
	// two interfaces at the same hierarchy level.
	EdgeKindInterfaceConnection
)

// String returns the string representation of an edge kind.
func (k EdgeKind) String() string {
	switch k {
	case EdgeKindComposition:
		return "composition"
	case EdgeKindInterfaceConnection:
		return "interface_connection"
	default:
		return "unknown"
	}
}

// Edge is one undirected edge of the graph. For composition edges Parent
// and Child are set and Shallow/Conditional are always false. For
// interface-connection edges A and B are the two endpoints.
type Edge struct {
	ID   uint64
	Kind EdgeKind

	// Composition endpoints.
	Parent NodeID
	Child  NodeID

	// Interface-connection endpoints and flags.
	A           NodeID
	B           NodeID
	Shallow     bool
	Conditional bool
}

// Other returns the far endpoint of an interface-connection edge as seen
// from node id.
func (e Edge) Other(id NodeID) NodeID {
	if e.A == id {
		return e.B
	}
	return e.A
}

// node is the internal adjacency record for one node.
type node struct {
	id         NodeID
	name       string
	parentEdge uint64 // 0 = no parent
	childEdges []uint64
	connEdges  []uint64
}

// Graph is an in-memory containment graph with interface connections.
// It is mutable through the builder methods only; every View accessor is
// read-only, so any number of concurrent searches may share one Graph once
// building is finished.
type Graph struct {
	nodes map[NodeID]*node
	edges map[uint64]*Edge

	nextNodeID NodeID
	nextEdgeID uint64
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:      make(map[NodeID]*node),
		edges:      make(map[uint64]*Edge),
		nextNodeID: 1,
		nextEdgeID: 1,
	}
}

// AddNode inserts a new node and returns its identity.
func (g *Graph) AddNode(name string) NodeID {
	id := g.nextNodeID
	g.nextNodeID++
	g.nodes[id] = &node{id: id, name: name}
	return id
}

// AddChild inserts a composition edge making child a child of parent.
// A node can have at most one composition parent.
func (g *Graph) AddChild(parent, child NodeID) (Edge, error) {
	p, ok := g.nodes[parent]
	if !ok {
		return Edge{}, fmt.Errorf("parent %d: %w", parent, ErrNodeNotFound)
	}
	c, ok := g.nodes[child]
	if !ok {
		return Edge{}, fmt.Errorf("child %d: %w", child, ErrNodeNotFound)
	}
	if parent == child {
		return Edge{}, fmt.Errorf("node %d: %w", parent, ErrSelfEdge)
	}
	if c.parentEdge != 0 {
		return Edge{}, fmt.Errorf("node %d: %w", child, ErrHasParent)
	}

	edge := &Edge{
		ID:     g.nextEdgeID,
		Kind:   EdgeKindComposition,
		Parent: parent,
		Child:  child,
	}
	g.nextEdgeID++
	g.edges[edge.ID] = edge
	p.childEdges = append(p.childEdges, edge.ID)
	c.parentEdge = edge.ID
	return *edge, nil
}

// ConnectOptions control the flags of an interface-connection edge.
type ConnectOptions struct {
	// Shallow restricts the link's visibility to searches that start at
	// the link's level or closer to the root.
	Shallow bool
	// Conditional marks the link as a weak default that a non-conditional
	// link to the same node may supersede.
	Conditional bool
}

// Connect inserts a non-shallow, non-conditional interface-connection
// edge between a and b.
func (g *Graph) Connect(a, b NodeID) (Edge, error) {
	return g.ConnectWithOptions(a, b, ConnectOptions{})
}

// ConnectShallow inserts a shallow interface-connection edge.
func (g *Graph) ConnectShallow(a, b NodeID) (Edge, error) {
	return g.ConnectWithOptions(a, b, ConnectOptions{Shallow: true})
}

// ConnectConditional inserts a conditional (weak) interface-connection edge.
func (g *Graph) ConnectConditional(a, b NodeID) (Edge, error) {
	return g.ConnectWithOptions(a, b, ConnectOptions{Conditional: true})
}

// ConnectWithOptions inserts an interface-connection edge between a and b
// with explicit flags.
func (g *Graph) ConnectWithOptions(a, b NodeID, opts ConnectOptions) (Edge, error) {
	na, ok := g.nodes[a]
	if !ok {
		return Edge{}, fmt.Errorf("node %d: %w", a, ErrNodeNotFound)
	}
	nb, ok := g.nodes[b]
	if !ok {
		return Edge{}, fmt.Errorf("node %d: %w", b, ErrNodeNotFound)
	}
	if a == b {
		return Edge{}, fmt.Errorf("node %d: %w", a, ErrSelfEdge)
	}

	edge := &Edge{
		ID:          g.nextEdgeID,
		Kind:        EdgeKindInterfaceConnection,
		A:           a,
		B:           b,
		Shallow:     opts.Shallow,
		Conditional: opts.Conditional,
	}
	g.nextEdgeID++
	g.edges[edge.ID] = edge
	na.connEdges = append(na.connEdges, edge.ID)
	nb.connEdges = append(nb.connEdges, edge.ID)
	return *edge, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }
