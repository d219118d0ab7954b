// Package graph provides the weighted, undirected road map that every search
// in waypath runs on.
//
// # Overview
//
// A [Graph] is a finite set of nodes (opaque string identifiers) joined by
// undirected edges carrying a non-negative weight, typically a road distance
// in kilometres. The edge relation is always symmetric: adding the edge
// (u, v, w) makes v a neighbor of u and u a neighbor of v with the same weight.
//
//	g := graph.New()
//	_ = g.AddEdge("Lisbon", "Porto", 313)
//	_ = g.AddEdge("Porto", "Braga", 55)
//
// Adding the same pair twice keeps the last weight. Self-loops are rejected
// with [ErrSelfLoop] and negative, NaN or infinite weights with
// [ErrInvalidWeight].
//
// # Deterministic Order
//
// [Graph.Neighbors], [Graph.Nodes] and [Graph.Edges] always return their
// results sorted by identifier. Searches depend on this: the order in which
// neighbors are explored decides which path is produced first, and sorted
// order makes every search reproducible across runs and implementations.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Once built it is treated as
// immutable and may be shared read-only by any number of goroutines.
package graph
