package graph

import "slices"

// Edge is a directed edge between two node names.
type Edge struct {
	From string
	To   string
}

// Graph is a named directed graph with set semantics for nodes and edges.
// The zero value is not usable; use New.
type Graph struct {
	name      string
	nodes     []string
	nodeIndex map[string]struct{}
	edges     []Edge
	edgeIndex map[Edge]struct{}
}

// New creates an empty graph.
func New(name string) *Graph {
	return &Graph{
		name:      name,
		nodeIndex: make(map[string]struct{}),
		edgeIndex: make(map[Edge]struct{}),
	}
}

// Name returns the graph name.
func (g *Graph) Name() string { return g.name }

// AddNode inserts name if absent. It reports whether the node was added.
func (g *Graph) AddNode(name string) bool {
	if _, ok := g.nodeIndex[name]; ok {
		return false
	}
	g.nodeIndex[name] = struct{}{}
	g.nodes = append(g.nodes, name)
	return true
}

// AddEdge inserts both endpoints as nodes and the edge from->to if absent.
// It reports whether the edge was added.
func (g *Graph) AddEdge(from, to string) bool {
	g.AddNode(from)
	g.AddNode(to)

	e := Edge{From: from, To: to}
	if _, ok := g.edgeIndex[e]; ok {
		return false
	}
	g.edgeIndex[e] = struct{}{}
	g.edges = append(g.edges, e)
	return true
}

// HasNode reports whether name is a node of g.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodeIndex[name]
	return ok
}

// HasEdge reports whether the edge from->to is in g.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edgeIndex[Edge{From: from, To: to}]
	return ok
}

// Nodes returns a copy of the node names in insertion order.
func (g *Graph) Nodes() []string { return slices.Clone(g.nodes) }

// Edges returns a copy of the edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }
