package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/waypath/pkg/graph"
)

type document struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID string   `json:"id"`
	X  *float64 `json:"x,omitempty"`
	Y  *float64 `json:"y,omitempty"`
}

type edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// WriteJSON encodes g as JSON and writes it to w. Positions are optional;
// nodes without a position carry no coordinates. Output is deterministic.
func WriteJSON(g *graph.Graph, pos graph.Positions, w io.Writer) error {
	out := document{
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		n := node{ID: id}
		if p, ok := pos[id]; ok {
			n.X, n.Y = &p.X, &p.Y
		}
		out.Nodes = append(out.Nodes, n)
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: e.A, To: e.B, Weight: e.Weight})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalGraph returns the JSON encoding of g without positions.
func MarshalGraph(g *graph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, nil, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *graph.Graph, pos graph.Positions, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, pos, f)
}

// ReadJSON decodes a JSON graph from r. Edge weights are validated exactly
// as [graph.Graph.AddEdge] does.
func ReadJSON(r io.Reader) (*graph.Graph, graph.Positions, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, nil, fmt.Errorf("%w: decode: %v", ErrMalformed, err)
	}

	g := graph.New()
	pos := graph.Positions{}
	for _, n := range data.Nodes {
		if err := g.AddNode(n.ID); err != nil {
			return nil, nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		if n.X != nil && n.Y != nil {
			pos[n.ID] = graph.Point{X: *n.X, Y: *n.Y}
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, nil, fmt.Errorf("edge %s-%s: %w", e.From, e.To, err)
		}
	}
	return g, pos, nil
}

// ImportJSON reads a JSON graph file.
func ImportJSON(path string) (*graph.Graph, graph.Positions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
