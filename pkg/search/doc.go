// Package search finds paths between two nodes of a [graph.Graph].
//
// # Strategies
//
// Two enumerators return lazy sequences of every simple path:
//
//   - [DepthFirst]: exhaustive depth-first enumeration
//   - [BreadthFirst]: level-order enumeration; paths come out in
//     non-decreasing hop count, so the first one has the fewest edges
//
// Three walkers return a single path:
//
//   - [HeuristicWalk]: greedy construction that at every step moves to the
//     unvisited neighbor minimizing edge weight plus the heuristic estimate to
//     the goal. It never reconsiders a choice and is not guaranteed to find
//     the lightest path.
//   - [GreedyWeightWalk]: the same greedy construction driven by edge weight
//     alone, built on [SelectMinWeightNeighbor].
//   - [AStar]: classic A* with an open-set priority queue. It returns a
//     minimum-weight path whenever the heuristic never overestimates.
//
// # Lazy Sequences
//
// Enumerators return an [iter.Seq] of [Path]. Nothing is computed until the
// sequence is ranged over, each path is produced on demand, and breaking out
// of the loop simply abandons the traversal:
//
//	seq, err := search.BreadthFirst(g, "Porto", "Faro")
//	if err != nil {
//	    return err
//	}
//	for p := range seq {
//	    fmt.Println(p)
//	    break // only the shortest-hop path
//	}
//
// Ranging over the same sequence again restarts the traversal. [First]
// returns the first element or [ErrNoPathFound] for an empty sequence.
//
// # Determinism
//
// Every strategy explores neighbors in ascending identifier order and breaks
// ties in favor of the first candidate in that order. Identical inputs always
// produce identical output.
//
// Traversals use explicit stacks and queues rather than recursion, so their
// memory use grows on the heap instead of the call stack.
package search
