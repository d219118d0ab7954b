package search

import (
	"iter"

	"github.com/matzehuels/waypath/pkg/graph"
)

// BreadthFirst enumerates every simple path from start to goal in
// breadth-first order using a FIFO work queue seeded with [start]. Paths are
// yielded in non-decreasing hop count, so the first one has the fewest edges
// (not necessarily the lowest weight). If start == goal the only path is
// [start].
//
// Returns graph.ErrNodeNotFound if start or goal is not in g. The sequence is
// empty when goal is unreachable.
func BreadthFirst(g *graph.Graph, start, goal string) (iter.Seq[Path], error) {
	if err := checkEndpoints(g, start, goal); err != nil {
		return nil, err
	}

	return func(yield func(Path) bool) {
		if start == goal {
			yield(Path{start})
			return
		}

		queue := []Path{{start}}
		for len(queue) > 0 {
			path := queue[0]
			queue[0] = nil
			queue = queue[1:]

			onPath := NewVisitedSet(path...)
			for _, n := range unvisited(g, path[len(path)-1], onPath) {
				next := extend(path, n)
				if n == goal {
					if !yield(next) {
						return
					}
					continue
				}
				queue = append(queue, next)
			}
		}
	}, nil
}
