package search

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/matzehuels/waypath/pkg/graph"
	"github.com/matzehuels/waypath/pkg/heuristic"
)

// ErrUnknownAlgorithm is returned by [ParseAlgorithm].
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm names a search strategy.
type Algorithm string

const (
	// BFS is [BreadthFirst].
	BFS Algorithm = "bfs"
	// DFS is [DepthFirst].
	DFS Algorithm = "dfs"
	// Heuristic is [HeuristicWalk], the greedy edge-plus-estimate walk.
	// It keeps the "astar" name the road-map tooling has always used for it.
	Heuristic Algorithm = "astar"
	// Greedy is [GreedyWeightWalk].
	Greedy Algorithm = "greedy"
	// Optimal is [AStar].
	Optimal Algorithm = "optimal"
)

var descriptions = map[Algorithm]string{
	BFS:       "breadth-first search (fewest hops)",
	DFS:       "depth-first search (first path found)",
	Heuristic: "greedy walk on edge weight + heuristic",
	Greedy:    "greedy walk on edge weight",
	Optimal:   "A* with priority frontier (lightest path)",
}

// Algorithms returns every algorithm in menu order.
func Algorithms() []Algorithm {
	return []Algorithm{BFS, DFS, Heuristic, Greedy, Optimal}
}

// ParseAlgorithm parses a case-insensitive algorithm name. The aliases
// "breadth", "depth", "heuristic" and "a*" are accepted.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case BFS, DFS, Heuristic, Greedy, Optimal:
		return a, nil
	case "breadth":
		return BFS, nil
	case "depth":
		return DFS, nil
	case "heuristic", "a*":
		return Heuristic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Description returns a short human-readable summary.
func (a Algorithm) Description() string { return descriptions[a] }

// Enumerates reports whether the algorithm produces a sequence of paths.
func (a Algorithm) Enumerates() bool { return a == BFS || a == DFS }

// NeedsHeuristic reports whether the algorithm reads a heuristic table.
func (a Algorithm) NeedsHeuristic() bool { return a == Heuristic || a == Optimal }

// Enumerate returns the path sequence of an enumerating algorithm.
func Enumerate(g *graph.Graph, algo Algorithm, start, goal string) (iter.Seq[Path], error) {
	switch algo {
	case BFS:
		return BreadthFirst(g, start, goal)
	case DFS:
		return DepthFirst(g, start, goal)
	}
	return nil, fmt.Errorf("%w: %q does not enumerate paths", ErrUnknownAlgorithm, algo)
}

// Find runs algo once and returns a single path. Enumerators contribute their
// first path, or ErrNoPathFound when they produce none.
func Find(g *graph.Graph, h heuristic.Estimator, algo Algorithm, start, goal string) (Path, error) {
	switch algo {
	case BFS, DFS:
		seq, err := Enumerate(g, algo, start, goal)
		if err != nil {
			return nil, err
		}
		p, err := First(seq)
		if err != nil {
			return nil, fmt.Errorf("%w: %s to %s", err, start, goal)
		}
		return p, nil
	case Heuristic:
		return HeuristicWalk(g, h, start, goal)
	case Greedy:
		return GreedyWeightWalk(g, start, goal)
	case Optimal:
		p, _, err := AStar(g, h, start, goal)
		return p, err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
}
