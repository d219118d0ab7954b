// Package planner answers route queries against a loaded road map.
//
// # Overview
//
// A [Dataset] bundles the graph, the optional heuristic table and the
// optional node coordinates loaded from the files named in the
// configuration. Its [Dataset.Hash] fingerprints all three, so cache keys
// change whenever a map file does.
//
// A [Runner] executes queries with caching, history and observability:
//
//	ds, err := planner.LoadDataset(cfg.Data)
//	runner := planner.NewRunner(cache, nil, history.NullStore{}, logger)
//	res, err := runner.Route(ctx, ds, planner.Request{
//	    From:      "Lisbon",
//	    To:        "Porto",
//	    Algorithm: search.Heuristic,
//	})
//
// Both the CLI and the HTTP server go through the Runner, so they share one
// caching policy.
//
// # Errors
//
// Errors returned by the Runner carry a code from
// [github.com/matzehuels/waypath/pkg/errors], derived from the underlying
// search or load failure.
package planner
