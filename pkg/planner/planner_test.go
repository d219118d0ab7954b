package planner

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waypath/pkg/cache"
	"github.com/matzehuels/waypath/pkg/config"
	werrors "github.com/matzehuels/waypath/pkg/errors"
	"github.com/matzehuels/waypath/pkg/graph"
	"github.com/matzehuels/waypath/pkg/heuristic"
	"github.com/matzehuels/waypath/pkg/history"
	"github.com/matzehuels/waypath/pkg/observability"
	"github.com/matzehuels/waypath/pkg/render"
	"github.com/matzehuels/waypath/pkg/search"
)

// diamond is A-B, A-C, B-C, C-D with unit weights, plus an isolated E.
func diamond(t *testing.T, withHeuristic bool) *Dataset {
	t.Helper()
	g := graph.New()
	for _, e := range [][2]string{{"A", "B"}, {"A", "C"}, {"B", "C"}, {"C", "D"}} {
		if err := g.AddEdge(e[0], e[1], 1); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddNode("E"); err != nil {
		t.Fatal(err)
	}

	var h *heuristic.Table
	if withHeuristic {
		h = heuristic.New()
		for n, v := range map[string]float64{"A": 2, "B": 2, "C": 1, "D": 0} {
			if err := h.SetEntry("D", n, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	return mustDataset(t, g, h, nil)
}

func mustDataset(t *testing.T, g *graph.Graph, h *heuristic.Table, pos graph.Positions) *Dataset {
	t.Helper()
	ds, err := NewDataset(g, h, pos)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func newTestRunner(t *testing.T) (*Runner, *history.MemoryStore) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := history.NewMemoryStore(10)
	return NewRunner(fc, nil, store, log.New(io.Discard)), store
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	mu     sync.Mutex
	hits   map[string]int
	misses map[string]int
}

func (h *countingCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[keyType]++
}

func (h *countingCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses[keyType]++
}

func TestRouteCachesAndRecords(t *testing.T) {
	hooks := &countingCacheHooks{hits: map[string]int{}, misses: map[string]int{}}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	r, store := newTestRunner(t)
	ds := diamond(t, false)

	first, err := r.Route(ctx, ds, Request{From: "A", To: "D", Algorithm: search.BFS})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if want := (search.Path{"A", "C", "D"}); !slices.Equal(first.Path, want) {
		t.Errorf("Path = %v, want %v", first.Path, want)
	}
	if first.Hops != 2 || first.Cost != 2 || first.Cached {
		t.Errorf("first result = %+v", first)
	}

	second, err := r.Route(ctx, ds, Request{From: "A", To: "D", Algorithm: search.BFS})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || !slices.Equal(second.Path, first.Path) || second.Hops != 2 {
		t.Errorf("second result = %+v, want cached copy of first", second)
	}
	if second.ID == first.ID {
		t.Error("each result should get its own ID")
	}
	if hooks.hits["route"] != 1 || hooks.misses["route"] != 1 {
		t.Errorf("route hits/misses = %d/%d, want 1/1", hooks.hits["route"], hooks.misses["route"])
	}

	refreshed, err := r.Route(ctx, ds, Request{From: "A", To: "D", Algorithm: search.BFS, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.Cached {
		t.Error("Refresh should bypass the cache")
	}

	entries, _ := store.Recent(ctx, 0)
	if len(entries) != 3 {
		t.Fatalf("history has %d entries, want 3", len(entries))
	}
	if entries[0].ID != refreshed.ID || entries[0].Hops != 2 {
		t.Errorf("newest history entry = %+v", entries[0])
	}
}

func TestRouteAlgorithms(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRunner(t)
	ds := diamond(t, true)

	tests := []struct {
		algo search.Algorithm
		want search.Path
	}{
		{search.BFS, search.Path{"A", "C", "D"}},
		{search.DFS, search.Path{"A", "B", "C", "D"}},
		{search.Heuristic, search.Path{"A", "C", "D"}},
		{search.Greedy, search.Path{"A", "B", "C", "D"}},
		{search.Optimal, search.Path{"A", "C", "D"}},
		{"breadth", search.Path{"A", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			res, err := r.Route(ctx, ds, Request{From: "A", To: "D", Algorithm: tt.algo})
			if err != nil {
				t.Fatalf("Route() error = %v", err)
			}
			if !slices.Equal(res.Path, tt.want) {
				t.Errorf("Path = %v, want %v", res.Path, tt.want)
			}
			if err := res.Path.Validate(ds.Graph, "A", "D"); err != nil {
				t.Errorf("invalid path: %v", err)
			}
		})
	}
}

func TestRouteErrors(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRunner(t)
	plain := diamond(t, false)

	tests := []struct {
		name string
		req  Request
		want werrors.Code
	}{
		{"UnknownNode", Request{From: "A", To: "Z", Algorithm: search.BFS}, werrors.ErrCodeNodeNotFound},
		{"EmptyNode", Request{From: " ", To: "D", Algorithm: search.BFS}, werrors.ErrCodeInvalidInput},
		{"UnknownAlgorithm", Request{From: "A", To: "D", Algorithm: "dijkstra"}, werrors.ErrCodeInvalidAlgorithm},
		{"NoHeuristic", Request{From: "A", To: "D", Algorithm: search.Heuristic}, werrors.ErrCodeMissingHeuristic},
		{"Disconnected", Request{From: "A", To: "E", Algorithm: search.BFS}, werrors.ErrCodeNoPathFound},
		{"GreedyDisconnected", Request{From: "A", To: "E", Algorithm: search.Greedy}, werrors.ErrCodeNoPathFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Route(ctx, plain, tt.req)
			if got := werrors.Classify(err); got != tt.want {
				t.Errorf("Route() error = %v, code %s, want %s", err, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	g := graph.New()
	_ = g.AddEdge("Lisbon", "Porto", 313)
	_ = g.AddEdge("porto", "Braga", 55)
	ds := mustDataset(t, g, nil, nil)

	tests := []struct {
		in   string
		want string
		code werrors.Code
	}{
		{"Lisbon", "Lisbon", ""},
		{"lisbon", "Lisbon", ""},
		{"  Braga ", "Braga", ""},
		{"Porto", "Porto", ""},
		{"PORTO", "", werrors.ErrCodeInvalidInput},
		{"Faro", "", werrors.ErrCodeNodeNotFound},
	}
	for _, tt := range tests {
		got, err := ds.Resolve(tt.in)
		if tt.code != "" {
			if werrors.Classify(err) != tt.code {
				t.Errorf("Resolve(%q) error = %v, want code %s", tt.in, err, tt.code)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestPaths(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRunner(t)
	ds := diamond(t, false)

	res, err := r.Paths(ctx, ds, Request{From: "A", To: "D", Algorithm: search.DFS}, 5)
	if err != nil {
		t.Fatalf("Paths() error = %v", err)
	}
	if len(res.Paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(res.Paths))
	}
	if !slices.Equal(res.Paths[0].Path, search.Path{"A", "B", "C", "D"}) || res.Paths[0].Cost != 3 {
		t.Errorf("first path = %+v", res.Paths[0])
	}

	limited, err := r.Paths(ctx, ds, Request{From: "A", To: "D", Algorithm: search.BFS}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited.Paths) != 1 || limited.Paths[0].Hops != 2 {
		t.Errorf("limited = %+v", limited.Paths)
	}

	again, _ := r.Paths(ctx, ds, Request{From: "A", To: "D", Algorithm: search.BFS}, 1)
	if !again.Cached {
		t.Error("repeated Paths() should be served from cache")
	}

	none, err := r.Paths(ctx, ds, Request{From: "A", To: "E", Algorithm: search.BFS}, 3)
	if err != nil || len(none.Paths) != 0 {
		t.Errorf("disconnected Paths() = %+v, %v, want empty", none, err)
	}

	_, err = r.Paths(ctx, ds, Request{From: "A", To: "D", Algorithm: search.Greedy}, 3)
	if !werrors.Is(err, werrors.ErrCodeInvalidAlgorithm) {
		t.Errorf("Paths(greedy) error = %v, want INVALID_ALGORITHM", err)
	}
}

func TestRenderDOT(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRunner(t)
	ds := diamond(t, false)

	out, err := r.Render(ctx, ds, []string{"A", "C", "D"}, render.FormatDOT, "A to D")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	dot := string(out)
	if !strings.Contains(dot, `label="A to D"`) || !strings.Contains(dot, `"A" [label="A", fillcolor=red`) {
		t.Errorf("unexpected DOT:\n%s", dot)
	}

	if _, err := r.Render(ctx, ds, nil, "gif", ""); !werrors.Is(err, werrors.ErrCodeInvalidFormat) {
		t.Errorf("Render(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	edges := writeFile(t, dir, "edges.csv", "A,B,1\nB,C,2\n")
	heur := writeFile(t, dir, "heuristic.csv", ",A,B,C\nA,0,1,3\nB,1,0,2\nC,3,2,0\n")
	coords := writeFile(t, dir, "coordinates.csv", "A,0,0\nB,1,0\nC,2,0\n")

	ds, err := LoadDataset(config.Data{Edges: edges, Heuristic: heur, Coordinates: coords})
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if ds.Graph.NodeCount() != 3 || ds.Heuristic == nil || len(ds.Positions) != 3 {
		t.Errorf("dataset = %+v", ds)
	}
	if len(ds.Hash) != 64 {
		t.Errorf("Hash = %q, want sha256 hex", ds.Hash)
	}

	bare, err := LoadDataset(config.Data{Edges: edges, Heuristic: filepath.Join(dir, "absent.csv")})
	if err != nil {
		t.Fatalf("LoadDataset() with absent heuristic error = %v", err)
	}
	if bare.Heuristic != nil || bare.Estimator() != nil {
		t.Error("absent heuristic file should leave the table nil")
	}
	if bare.Hash == ds.Hash {
		t.Error("heuristic and positions should be part of the fingerprint")
	}

	_, err = LoadDataset(config.Data{Edges: filepath.Join(dir, "missing.csv")})
	if !werrors.Is(err, werrors.ErrCodeFileNotFound) {
		t.Errorf("missing edges error = %v, want FILE_NOT_FOUND", err)
	}

	bad := writeFile(t, dir, "bad.csv", "A,B\n")
	_, err = LoadDataset(config.Data{Edges: bad})
	if !werrors.Is(err, werrors.ErrCodeInvalidFormat) {
		t.Errorf("malformed edges error = %v, want INVALID_FORMAT", err)
	}
}

func TestLoadDatasetFromJSON(t *testing.T) {
	dir := t.TempDir()
	edges := writeFile(t, dir, "map.json", `{
  "nodes": [{"id": "A", "x": 0, "y": 0}, {"id": "B", "x": 5, "y": 5}, {"id": "C"}],
  "edges": [{"from": "A", "to": "B", "weight": 1}, {"from": "B", "to": "C", "weight": 2}]
}`)

	ds, err := LoadDataset(config.Data{Edges: edges, Heuristic: filepath.Join(dir, "absent.csv")})
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if ds.Graph.NodeCount() != 3 || ds.Graph.EdgeCount() != 2 {
		t.Errorf("graph has %d nodes, %d edges; want 3, 2", ds.Graph.NodeCount(), ds.Graph.EdgeCount())
	}
	if len(ds.Positions) != 2 || ds.Positions["B"] != (graph.Point{X: 5, Y: 5}) {
		t.Errorf("Positions = %v, want A and B from the export", ds.Positions)
	}

	coords := writeFile(t, dir, "coordinates.csv", "A,1,1\nB,2,2\nC,3,3\n")
	ds, err = LoadDataset(config.Data{Edges: edges, Coordinates: coords})
	if err != nil {
		t.Fatalf("LoadDataset() with coordinates error = %v", err)
	}
	if len(ds.Positions) != 3 || ds.Positions["B"] != (graph.Point{X: 2, Y: 2}) {
		t.Errorf("Positions = %v, want the coordinates file", ds.Positions)
	}

	bad := writeFile(t, dir, "bad.json", `{"edges": [`)
	_, err = LoadDataset(config.Data{Edges: bad})
	if !werrors.Is(err, werrors.ErrCodeInvalidFormat) {
		t.Errorf("truncated JSON error = %v, want INVALID_FORMAT", err)
	}
}

func TestDatasetHashTracksWeights(t *testing.T) {
	build := func(w float64) *Dataset {
		g := graph.New()
		_ = g.AddEdge("A", "B", w)
		return mustDataset(t, g, nil, nil)
	}
	if build(1).Hash == build(2).Hash {
		t.Error("changing a weight should change the fingerprint")
	}
	if build(1).Hash != build(1).Hash {
		t.Error("fingerprint should be deterministic")
	}
}

func TestNewDatasetRejectsNonFiniteCoordinates(t *testing.T) {
	h := heuristic.New()
	_ = h.SetEntry("B", "A", 1)

	for _, p := range []graph.Point{{X: math.NaN()}, {Y: math.Inf(1)}, {X: math.Inf(-1)}} {
		g := graph.New()
		_ = g.AddEdge("A", "B", 1)
		_, err := NewDataset(g, h, graph.Positions{"A": p})
		if !werrors.Is(err, werrors.ErrCodeInvalidInput) {
			t.Errorf("NewDataset(pos A=%v) error = %v, want INVALID_INPUT", p, err)
		}
	}
}

func TestDatasetHashSeparatesMaps(t *testing.T) {
	h := heuristic.New()
	_ = h.SetEntry("B", "A", 1)
	pos := graph.Positions{"A": {X: 0, Y: 0}, "B": {X: 1, Y: 0}}

	direct := graph.New()
	_ = direct.AddEdge("A", "B", 1)
	detour := graph.New()
	_ = detour.AddEdge("A", "C", 99)
	_ = detour.AddEdge("C", "B", 1)

	if mustDataset(t, direct, h, pos).Hash == mustDataset(t, detour, h, pos).Hash {
		t.Error("different maps with the same heuristic share a fingerprint")
	}
}

func TestLoadDatasetRejectsNonFiniteCoordinates(t *testing.T) {
	dir := t.TempDir()
	edges := writeFile(t, dir, "edges.csv", "A,B,1\n")
	coords := writeFile(t, dir, "coords.csv", "A,NaN,0\nB,1,0\n")

	_, err := LoadDataset(config.Data{Edges: edges, Coordinates: coords})
	if !werrors.Is(err, werrors.ErrCodeInvalidFormat) {
		t.Errorf("LoadDataset() error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.History == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil...) left a nil field: %+v", r)
	}
	if r.TTL != DefaultTTL {
		t.Errorf("TTL = %v, want %v", r.TTL, DefaultTTL)
	}
	if err := r.Close(context.Background()); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
