package graph

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddEdge] and [Graph.AddNode] when
	// a node identifier is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrInvalidWeight is returned by [Graph.AddEdge] when the weight is
	// negative, NaN or infinite.
	ErrInvalidWeight = errors.New("invalid edge weight")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same node.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrNodeNotFound is returned when a queried node is not part of the graph.
	ErrNodeNotFound = errors.New("node not found")
)

// Edge is an undirected weighted connection. Edges returned by [Graph.Edges]
// are normalized so that A < B.
type Edge struct {
	A      string
	B      string
	Weight float64
}

// Graph is a weighted undirected graph without self-loops or parallel edges.
//
// The zero value is not usable - use New to create a Graph.
type Graph struct {
	adj   map[string]map[string]float64
	edges int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[string]map[string]float64)}
}

// AddNode adds an isolated node. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[string]float64)
	}
	return nil
}

// AddEdge inserts the undirected edge u-v with the given weight, creating the
// endpoints if needed. Re-adding an existing pair overwrites its weight.
func (g *Graph) AddEdge(u, v string, weight float64) error {
	if u == "" || v == "" {
		return ErrInvalidNodeID
	}
	if u == v {
		return fmt.Errorf("%w: %q", ErrSelfLoop, u)
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: %v for %s-%s", ErrInvalidWeight, weight, u, v)
	}
	_ = g.AddNode(u)
	_ = g.AddNode(v)
	if _, exists := g.adj[u][v]; !exists {
		g.edges++
	}
	g.adj[u][v] = weight
	g.adj[v][u] = weight
	return nil
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// Neighbors returns the nodes adjacent to id in ascending identifier order.
// The returned slice is freshly allocated and may be modified by the caller.
func (g *Graph) Neighbors(id string) ([]string, error) {
	nbrs, ok := g.adj[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return slices.Sorted(maps.Keys(nbrs)), nil
}

// Weight returns the weight of the edge u-v and whether that edge exists.
func (g *Graph) Weight(u, v string) (float64, bool) {
	w, ok := g.adj[u][v]
	return w, ok
}

// Degree returns the number of neighbors of id, or 0 if id is unknown.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// Nodes returns all node identifiers in ascending order.
func (g *Graph) Nodes() []string {
	return slices.Sorted(maps.Keys(g.adj))
}

// Edges returns every edge once, sorted by (A, B).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, u := range g.Nodes() {
		for v, w := range g.adj[u] {
			if u < v {
				out = append(out, Edge{A: u, B: v, Weight: w})
			}
		}
	}
	slices.SortFunc(out, func(x, y Edge) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of undirected edges in the graph.
func (g *Graph) EdgeCount() int { return g.edges }

// Point is a node's position on a 2D map.
type Point struct {
	X, Y float64
}

// Positions maps node identifiers to map positions.
type Positions map[string]Point
