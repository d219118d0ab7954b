package search

import (
	"iter"

	"github.com/matzehuels/waypath/pkg/graph"
)

// dfsFrame is one level of the explicit depth-first stack: the sorted
// neighbors of the node at that depth and the index of the next one to try.
type dfsFrame struct {
	next []string
	i    int
}

// DepthFirst enumerates every simple path from start to goal in depth-first
// order. Neighbors are tried in ascending identifier order and a path is
// yielded as soon as it reaches goal; exploration then resumes with the next
// untried branch. If start == goal the only path is [start].
//
// Returns graph.ErrNodeNotFound if start or goal is not in g. The sequence is
// empty when goal is unreachable.
func DepthFirst(g *graph.Graph, start, goal string) (iter.Seq[Path], error) {
	if err := checkEndpoints(g, start, goal); err != nil {
		return nil, err
	}

	return func(yield func(Path) bool) {
		if start == goal {
			yield(Path{start})
			return
		}

		path := Path{start}
		visited := NewVisitedSet(start)
		stack := []dfsFrame{{next: neighbors(g, start)}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.i == len(top.next) {
				stack = stack[:len(stack)-1]
				visited.Remove(path[len(path)-1])
				path = path[:len(path)-1]
				continue
			}

			n := top.next[top.i]
			top.i++
			if visited.Has(n) {
				continue
			}
			if n == goal {
				if !yield(extend(path, n)) {
					return
				}
				continue
			}

			visited.Add(n)
			path = append(path, n)
			stack = append(stack, dfsFrame{next: neighbors(g, n)})
		}
	}, nil
}
