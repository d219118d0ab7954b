package search

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/matzehuels/waypath/pkg/graph"
)

var (
	// ErrNoPathFound is returned when no path connects start and goal, or
	// when a greedy walk runs out of unvisited neighbors before reaching the
	// goal.
	ErrNoPathFound = errors.New("no path found")

	// ErrNoUnvisitedNeighbor is returned by [SelectMinWeightNeighbor] when
	// every neighbor of the node has been visited.
	ErrNoUnvisitedNeighbor = errors.New("no unvisited neighbor")

	// ErrInvalidPath is returned by [Path.Validate].
	ErrInvalidPath = errors.New("invalid path")
)

// Path is an ordered sequence of distinct nodes where consecutive nodes are
// joined by an edge.
type Path []string

// Hops returns the number of edges in the path.
func (p Path) Hops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Cost returns the summed edge weight of the path in g.
func (p Path) Cost(g *graph.Graph) (float64, error) {
	var total float64
	for i := 1; i < len(p); i++ {
		w, ok := g.Weight(p[i-1], p[i])
		if !ok {
			return 0, fmt.Errorf("%w: no edge %s-%s", ErrInvalidPath, p[i-1], p[i])
		}
		total += w
	}
	return total, nil
}

// Validate checks that p is a simple path in g from start to goal.
func (p Path) Validate(g *graph.Graph, start, goal string) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if p[0] != start || p[len(p)-1] != goal {
		return fmt.Errorf("%w: runs %s..%s, want %s..%s", ErrInvalidPath, p[0], p[len(p)-1], start, goal)
	}
	seen := NewVisitedSet()
	for _, n := range p {
		if seen.Has(n) {
			return fmt.Errorf("%w: %s repeated", ErrInvalidPath, n)
		}
		seen.Add(n)
	}
	_, err := p.Cost(g)
	return err
}

// String joins the nodes with arrows.
func (p Path) String() string { return strings.Join(p, " → ") }

// VisitedSet is the set of nodes already placed on the path under
// construction. Each traversal owns its own set.
type VisitedSet map[string]struct{}

// NewVisitedSet returns a set holding nodes.
func NewVisitedSet(nodes ...string) VisitedSet {
	v := make(VisitedSet, len(nodes))
	for _, n := range nodes {
		v.Add(n)
	}
	return v
}

// Add inserts n.
func (v VisitedSet) Add(n string) { v[n] = struct{}{} }

// Remove deletes n.
func (v VisitedSet) Remove(n string) { delete(v, n) }

// Has reports whether n is in the set.
func (v VisitedSet) Has(n string) bool {
	_, ok := v[n]
	return ok
}

// First returns the first path of seq, or ErrNoPathFound if seq is empty.
func First(seq iter.Seq[Path]) (Path, error) {
	for p := range seq {
		return p, nil
	}
	return nil, ErrNoPathFound
}

// Take returns up to n paths from seq. A non-positive n collects everything.
func Take(seq iter.Seq[Path], n int) []Path {
	var out []Path
	for p := range seq {
		out = append(out, p)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

func checkEndpoints(g *graph.Graph, start, goal string) error {
	for _, id := range []string{start, goal} {
		if !g.HasNode(id) {
			return fmt.Errorf("%w: %q", graph.ErrNodeNotFound, id)
		}
	}
	return nil
}

// extend returns a copy of p with n appended.
func extend(p Path, n string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, n)
}

// neighbors returns the sorted neighbors of a node known to be in g.
func neighbors(g *graph.Graph, id string) []string {
	nb, _ := g.Neighbors(id)
	return nb
}

// unvisited returns the sorted neighbors of id that are not in visited.
func unvisited(g *graph.Graph, id string, visited VisitedSet) []string {
	return slices.DeleteFunc(neighbors(g, id), visited.Has)
}
