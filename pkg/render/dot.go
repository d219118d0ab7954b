package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/waypath/pkg/graph"
)

const (
	routeColor    = "cyan3"
	routeFill     = "lightcyan"
	endpointColor = "red"

	// DefaultScale converts coordinate units to Graphviz inches.
	DefaultScale = 1.0
)

// Options configures map rendering.
type Options struct {
	// Route highlights a path through the map. It may be empty.
	Route []string

	// Positions pins nodes at fixed coordinates. Ignored unless every
	// node has a position.
	Positions graph.Positions

	// Scale multiplies pinned coordinates. Zero means [DefaultScale].
	Scale float64

	// Title is drawn above the map when non-empty.
	Title string

	// Detailed adds each node's degree to its label.
	Detailed bool
}

// ToDOT converts a road map to Graphviz DOT source. Output is deterministic:
// nodes and edges are emitted in sorted order.
func ToDOT(g *graph.Graph, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	pinned := covers(g, opts.Positions)
	onRoute, routeEdges := routeSets(opts.Route)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=28;\n", opts.Title)
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [fontsize=11, color=grey40];\n")
	buf.WriteString("\n")

	first, last := endpoints(opts.Route)
	for _, id := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(g, id, opts.Detailed))}
		switch {
		case id == first || id == last:
			attrs = append(attrs, "fillcolor="+endpointColor, "fontcolor=white")
		case onRoute[id]:
			attrs = append(attrs, "fillcolor="+routeFill, "color="+routeColor)
		}
		if pinned {
			p := opts.Positions[id]
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(p.X*scale), fmtFloat(p.Y*scale)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := []string{fmt.Sprintf("label=%q", fmtFloat(e.Weight))}
		if routeEdges[edgeKey(e.A, e.B)] {
			attrs = append(attrs, "color="+routeColor, "penwidth=3", "fontcolor="+routeColor)
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.A, e.B, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(g *graph.Graph, id string, detailed bool) string {
	if !detailed {
		return id
	}
	return fmt.Sprintf("%s\ndegree: %d", id, g.Degree(id))
}

func covers(g *graph.Graph, pos graph.Positions) bool {
	if len(pos) == 0 {
		return false
	}
	for _, id := range g.Nodes() {
		if _, ok := pos[id]; !ok {
			return false
		}
	}
	return true
}

func routeSets(route []string) (map[string]bool, map[[2]string]bool) {
	nodes := make(map[string]bool, len(route))
	edges := make(map[[2]string]bool, len(route))
	for i, id := range route {
		nodes[id] = true
		if i > 0 {
			edges[edgeKey(route[i-1], id)] = true
		}
	}
	return nodes, edges
}

func endpoints(route []string) (string, string) {
	if len(route) == 0 {
		return "", ""
	}
	return route[0], route[len(route)-1]
}

func edgeKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
