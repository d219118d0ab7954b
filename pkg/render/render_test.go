package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/waypath/pkg/graph"
)

func triangle(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, e := range []graph.Edge{{A: "A", B: "B", Weight: 1}, {A: "B", B: "C", Weight: 2.5}, {A: "A", B: "C", Weight: 4}} {
		if err := g.AddEdge(e.A, e.B, e.Weight); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestToDOTBasic(t *testing.T) {
	dot := ToDOT(triangle(t), Options{})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`"A" [label="A"];`,
		`"B" -- "C" [label="2.5"];`,
		`"A" -- "C" [label="4"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("DOT should be undirected")
	}
	if strings.Contains(dot, "pos=") {
		t.Error("DOT without positions should not pin nodes")
	}
}

func TestToDOTRoute(t *testing.T) {
	dot := ToDOT(triangle(t), Options{Route: []string{"C", "B", "A"}})

	if !strings.Contains(dot, `"C" [label="C", fillcolor=red`) {
		t.Errorf("start endpoint not highlighted:\n%s", dot)
	}
	if !strings.Contains(dot, `"A" [label="A", fillcolor=red`) {
		t.Errorf("goal endpoint not highlighted:\n%s", dot)
	}
	if !strings.Contains(dot, `"B" [label="B", fillcolor=lightcyan`) {
		t.Errorf("intermediate node not highlighted:\n%s", dot)
	}
	// Route edges match regardless of the direction they were walked.
	if !strings.Contains(dot, `"A" -- "B" [label="1", color=cyan3`) {
		t.Errorf("route edge A-B not highlighted:\n%s", dot)
	}
	if strings.Contains(dot, `"A" -- "C" [label="4", color`) {
		t.Errorf("off-route edge highlighted:\n%s", dot)
	}
}

func TestToDOTPositions(t *testing.T) {
	g := triangle(t)
	full := graph.Positions{"A": {X: 0, Y: 0}, "B": {X: 1, Y: 0.5}, "C": {X: 2, Y: 1}}

	dot := ToDOT(g, Options{Positions: full, Scale: 2})
	if !strings.Contains(dot, `pos="2,1!"`) {
		t.Errorf("scaled position missing:\n%s", dot)
	}

	partial := graph.Positions{"A": {X: 0, Y: 0}}
	if dot := ToDOT(g, Options{Positions: partial}); strings.Contains(dot, "pos=") {
		t.Errorf("partial positions should fall back to free layout:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	g := triangle(t)
	opts := Options{Route: []string{"A", "C"}, Title: "Map", Detailed: true}
	if ToDOT(g, opts) != ToDOT(g, opts) {
		t.Error("ToDOT output is not deterministic")
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(string(f))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(gif) error = %v, want ErrUnknownFormat", err)
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	dot := ToDOT(triangle(t), Options{})
	out, err := Render(context.Background(), dot, FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != dot {
		t.Error("FormatDOT should return the source unchanged")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %s", got)
	}
}
