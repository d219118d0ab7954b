// Package render draws road maps and routes.
//
// # Overview
//
// Maps are rendered through Graphviz. [ToDOT] converts a [graph.Graph] into
// undirected DOT source, and [Render] lays it out and encodes it:
//
//	dot := render.ToDOT(g, render.Options{Route: path, Positions: pos})
//	svg, err := render.Render(ctx, dot, render.FormatSVG)
//
// # Styling
//
// Every node is drawn as a rounded box labelled with its identifier, and
// every edge carries its weight as a label. When a route is supplied, the
// edges along it are drawn bold in cyan and its two endpoints are filled
// red. Intermediate route nodes get a light cyan fill.
//
// # Layout
//
// When [Options.Positions] covers every node, nodes are pinned at their
// coordinates (scaled by [Options.Scale]) and the neato engine only routes
// edges. Otherwise neato computes a free spring layout.
//
// # Formats
//
// [FormatDOT] returns the DOT source unchanged. [FormatSVG] and [FormatPNG]
// render in-process with [github.com/goccy/go-graphviz], so no Graphviz
// installation is needed.
package render
