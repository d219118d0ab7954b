package search

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/waypath/pkg/graph"
	"github.com/matzehuels/waypath/pkg/heuristic"
)

// HeuristicWalk builds a single path from start to goal by repeatedly moving
// to the unvisited neighbor c of the current node that minimizes
//
//	weight(current, c) + h.Lookup(goal, c)
//
// If goal is itself an unvisited neighbor the walk steps straight to it.
// Candidates are scanned in ascending identifier order and only a strictly
// smaller score replaces the current best, so ties go to the lowest
// identifier. Earlier choices are never revisited: the walk can miss the
// lightest path or get stuck even when the goal is reachable.
//
// Errors:
//   - graph.ErrNodeNotFound if start or goal is not in g
//   - heuristic.ErrMissingHeuristic if an estimate is missing for a candidate
//   - ErrNoPathFound if the walk reaches a node with no unvisited neighbors
func HeuristicWalk(g *graph.Graph, h heuristic.Estimator, start, goal string) (Path, error) {
	if err := checkEndpoints(g, start, goal); err != nil {
		return nil, err
	}
	if start == goal {
		return Path{start}, nil
	}
	if h == nil {
		return nil, fmt.Errorf("%w: no heuristic table", heuristic.ErrMissingHeuristic)
	}
	return walk(g, start, goal, func(cur string, visited VisitedSet) (string, error) {
		return selectByEstimate(g, h, cur, goal, visited)
	})
}

// GreedyWeightWalk builds a single path by always taking the lightest edge to
// an unvisited neighbor, stepping straight to goal when it is adjacent.
// It fails like [HeuristicWalk] but never needs a heuristic.
func GreedyWeightWalk(g *graph.Graph, start, goal string) (Path, error) {
	if err := checkEndpoints(g, start, goal); err != nil {
		return nil, err
	}
	return walk(g, start, goal, func(cur string, visited VisitedSet) (string, error) {
		if _, ok := g.Weight(cur, goal); ok {
			return goal, nil
		}
		return SelectMinWeightNeighbor(g, cur, visited)
	})
}

// SelectMinWeightNeighbor returns the neighbor of node with the smallest edge
// weight among those not in visited. Ties go to the lowest identifier. node
// itself is always treated as visited and visited is not modified.
//
// Returns graph.ErrNodeNotFound for an unknown node and
// ErrNoUnvisitedNeighbor when every neighbor has been visited.
func SelectMinWeightNeighbor(g *graph.Graph, node string, visited VisitedSet) (string, error) {
	nb, err := g.Neighbors(node)
	if err != nil {
		return "", err
	}

	best, bestW := "", 0.0
	for _, c := range nb {
		if visited.Has(c) || c == node {
			continue
		}
		if w, _ := g.Weight(node, c); best == "" || w < bestW {
			best, bestW = c, w
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: %q", ErrNoUnvisitedNeighbor, node)
	}
	return best, nil
}

type stepFunc func(cur string, visited VisitedSet) (string, error)

// walk extends a path from start one chosen node at a time until goal is
// reached. The visited set grows on every step, so the loop runs at most
// once per node.
func walk(g *graph.Graph, start, goal string, step stepFunc) (Path, error) {
	path := Path{start}
	visited := NewVisitedSet(start)

	for cur := start; cur != goal; {
		next, err := step(cur, visited)
		if err != nil {
			return nil, stuck(err, path)
		}
		visited.Add(next)
		path = append(path, next)
		cur = next
	}
	return path, nil
}

func stuck(err error, path Path) error {
	if errors.Is(err, ErrNoUnvisitedNeighbor) {
		return fmt.Errorf("%w: stuck at %q after %s", ErrNoPathFound, path[len(path)-1], path)
	}
	return err
}

func selectByEstimate(g *graph.Graph, h heuristic.Estimator, cur, goal string, visited VisitedSet) (string, error) {
	adj := unvisited(g, cur, visited)
	if len(adj) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoUnvisitedNeighbor, cur)
	}
	if slices.Contains(adj, goal) {
		return goal, nil
	}

	best, bestScore := "", 0.0
	for _, c := range adj {
		est, err := h.Lookup(goal, c)
		if err != nil {
			return "", err
		}
		w, _ := g.Weight(cur, c)
		if score := w + est; best == "" || score < bestScore {
			best, bestScore = c, score
		}
	}
	return best, nil
}
