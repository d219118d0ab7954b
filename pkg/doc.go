// Package pkg provides the core libraries for Waypath route planning.
//
// # Overview
//
// Waypath loads a weighted, undirected road map from CSV files and finds
// routes between locations. The pkg directory is organized into three areas:
//
//  1. Domain logic ([graph], [heuristic], [search])
//  2. Infrastructure ([io], [config], [cache], [history], [observability], [errors])
//  3. Orchestration and surfaces ([planner], [render], [server])
//
// # Architecture
//
// The typical data flow through Waypath:
//
//	edges.csv / heuristic.csv / coordinates.csv
//	         ↓
//	    [io] package (parse into graph, heuristic table, positions)
//	         ↓
//	    [planner] package (resolve names, cache, record history)
//	         ↓
//	    [search] package (BFS, DFS, greedy walks, A*)
//	         ↓
//	    [render] package (DOT → SVG/PNG via Graphviz)
//
// # Quick Start
//
// Find a route and draw it:
//
//	ds, _ := planner.LoadDataset(config.Data{
//	    Edges:     "edges.csv",
//	    Heuristic: "heuristic.csv",
//	})
//	runner := planner.NewRunner(nil, nil, nil, nil)
//	res, _ := runner.Route(ctx, ds, planner.Request{
//	    From:      "Lisbon",
//	    To:        "Braga",
//	    Algorithm: search.Optimal,
//	})
//	svg, _ := runner.Render(ctx, ds, res.Path, render.FormatSVG, "")
//
// Use the search package directly:
//
//	g, _ := io.ImportEdges("edges.csv")
//	seq, _ := search.BreadthFirst(g, "Lisbon", "Braga")
//	for p := range seq {
//	    fmt.Println(p)
//	}
//
// # Main Packages
//
// [graph] - Undirected weighted graph with sorted neighbor iteration.
//
// [heuristic] - Sparse table of distance estimates keyed by (goal, node).
//
// [search] - Lazy breadth- and depth-first path enumeration, greedy walks
// and an optimal A* search.
//
// [io] - CSV readers for edges, heuristic matrices and coordinates, plus a
// JSON export of the graph.
//
// [planner] - Dataset loading and the Runner that serves route, paths and
// render queries with caching and history.
//
// [cache] - Route cache backends: file, Redis and a no-op cache.
//
// [history] - Route history stores: MongoDB and in-memory.
//
// [render] - Graphviz drawings of the map with a highlighted route.
//
// [server] - HTTP API over the planner.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/graph
// [heuristic]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/heuristic
// [search]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/search
// [io]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/cache
// [history]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/history
// [observability]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/errors
// [planner]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/planner
// [render]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/render
// [server]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/server
package pkg
