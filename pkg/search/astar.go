package search

import (
	"container/heap"
	"fmt"

	"github.com/matzehuels/waypath/pkg/graph"
	"github.com/matzehuels/waypath/pkg/heuristic"
)

type openItem struct {
	node  string
	g     float64
	f     float64
	index int
}

// openSet is a min-heap on f, ties broken by node identifier.
type openSet []*openItem

func (q openSet) Len() int { return len(q) }
func (q openSet) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].node < q[j].node
}
func (q openSet) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *openSet) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// AStar runs classic A* from start to goal and returns the path with its
// total weight. Unlike [HeuristicWalk] it keeps a priority frontier and
// revisits earlier choices, so the result is a minimum-weight path whenever
// h never overestimates the remaining distance.
//
// The estimate for node n is h.Lookup(goal, n), with the table's usual
// (b, a) fallback. The goal itself needs no estimate.
//
// Errors:
//   - graph.ErrNodeNotFound if start or goal is not in g
//   - heuristic.ErrMissingHeuristic if a reached node has no estimate
//   - ErrNoPathFound if goal is unreachable
func AStar(g *graph.Graph, h heuristic.Estimator, start, goal string) (Path, float64, error) {
	if err := checkEndpoints(g, start, goal); err != nil {
		return nil, 0, err
	}
	if start == goal {
		return Path{start}, 0, nil
	}
	if h == nil {
		return nil, 0, fmt.Errorf("%w: no heuristic table", heuristic.ErrMissingHeuristic)
	}

	estimate := func(n string) (float64, error) {
		if n == goal {
			return 0, nil
		}
		return h.Lookup(goal, n)
	}

	f0, err := estimate(start)
	if err != nil {
		return nil, 0, err
	}

	open := openSet{}
	heap.Init(&open)
	startItem := &openItem{node: start, f: f0}
	heap.Push(&open, startItem)

	inOpen := map[string]*openItem{start: startItem}
	gScore := map[string]float64{start: 0}
	cameFrom := make(map[string]string)
	closed := NewVisitedSet()

	for open.Len() > 0 {
		cur := heap.Pop(&open).(*openItem)
		delete(inOpen, cur.node)
		if cur.node == goal {
			return reconstruct(cameFrom, start, goal), cur.g, nil
		}
		closed.Add(cur.node)

		for _, n := range neighbors(g, cur.node) {
			if closed.Has(n) {
				continue
			}
			w, _ := g.Weight(cur.node, n)
			tentative := cur.g + w
			if old, seen := gScore[n]; seen && tentative >= old {
				continue
			}
			est, err := estimate(n)
			if err != nil {
				return nil, 0, err
			}
			gScore[n] = tentative
			cameFrom[n] = cur.node

			if item, ok := inOpen[n]; ok {
				item.g, item.f = tentative, tentative+est
				heap.Fix(&open, item.index)
				continue
			}
			item := &openItem{node: n, g: tentative, f: tentative + est}
			heap.Push(&open, item)
			inOpen[n] = item
		}
	}
	return nil, 0, fmt.Errorf("%w: %q unreachable from %q", ErrNoPathFound, goal, start)
}

func reconstruct(cameFrom map[string]string, start, goal string) Path {
	p := Path{goal}
	for cur := goal; cur != start; {
		cur = cameFrom[cur]
		p = append(p, cur)
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}
