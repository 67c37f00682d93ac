package graph

// Edge is a weighted connection to a destination node.
type Edge struct {
	To     int
	Weight int
}

// Graph is a weighted directed graph over a fixed set of integer node ids.
// Node ids are assigned by the scenario location mapper and stay stable for
// the lifetime of the graph. Adjacency lists preserve insertion order so
// traversal is deterministic.
type Graph struct {
	adj [][]Edge
}

// New creates a graph with nodes [0, nodeCount). The node set is fixed;
// only edges can be added afterwards.
func New(nodeCount int) *Graph {
	if nodeCount < 0 {
		nodeCount = 0
	}
	return &Graph{adj: make([][]Edge, nodeCount)}
}

// AddEdge appends a one-directional edge. Duplicates are kept as-is.
// Edges referencing nodes outside the graph are ignored.
func (g *Graph) AddEdge(from, to, weight int) {
	if !g.hasNode(from) || !g.hasNode(to) {
		return
	}
	g.adj[from] = append(g.adj[from], Edge{To: to, Weight: weight})
}

// AddBidirectionalEdge adds the edge in both orientations with the same weight.
func (g *Graph) AddBidirectionalEdge(a, b, weight int) {
	g.AddEdge(a, b, weight)
	g.AddEdge(b, a, weight)
}

// Adjacency returns the outgoing edges of node in insertion order.
// Unknown nodes yield an empty list rather than an error; the simulation
// tolerates sparse graphs.
func (g *Graph) Adjacency(node int) []Edge {
	if !g.hasNode(node) {
		return nil
	}
	return g.adj[node]
}

// NodeCount reports the fixed number of nodes.
func (g *Graph) NodeCount() int { return len(g.adj) }

func (g *Graph) hasNode(n int) bool { return n >= 0 && n < len(g.adj) }
