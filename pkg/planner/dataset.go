package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/waypath/pkg/cache"
	"github.com/matzehuels/waypath/pkg/config"
	werrors "github.com/matzehuels/waypath/pkg/errors"
	"github.com/matzehuels/waypath/pkg/graph"
	"github.com/matzehuels/waypath/pkg/heuristic"
	wio "github.com/matzehuels/waypath/pkg/io"
)

// Dataset is a loaded road map.
type Dataset struct {
	Graph *graph.Graph

	// Heuristic is nil when no heuristic file is configured.
	Heuristic *heuristic.Table

	// Positions is nil when no coordinates file is configured.
	Positions graph.Positions

	// Hash fingerprints the graph, heuristic and positions.
	Hash string
}

// NewDataset bundles already-loaded parts and computes the fingerprint.
// Non-finite coordinates are rejected with INVALID_INPUT.
func NewDataset(g *graph.Graph, h *heuristic.Table, pos graph.Positions) (*Dataset, error) {
	for _, id := range slices.Sorted(maps.Keys(pos)) {
		if p := pos[id]; !finite(p.X) || !finite(p.Y) {
			return nil, werrors.New(werrors.ErrCodeInvalidInput, "coordinates of %s are not finite", id)
		}
	}
	ds := &Dataset{Graph: g, Heuristic: h, Positions: pos}
	hash, err := fingerprint(ds)
	if err != nil {
		return nil, werrors.Wrap(werrors.ErrCodeInternal, err, "fingerprint dataset")
	}
	ds.Hash = hash
	return ds, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// LoadDataset reads the files named by data. The edge list is required.
// An edge file ending in .json is read as a graph export and may carry
// positions; a coordinates file replaces them. A configured heuristic or
// coordinates file that does not exist is skipped; any other read or parse
// failure is an error.
func LoadDataset(data config.Data) (*Dataset, error) {
	g, pos, err := loadEdges(data.Edges)
	if err != nil {
		return nil, loadError(err, "load edges")
	}

	var h *heuristic.Table
	if data.Heuristic != "" {
		h, err = wio.ImportHeuristic(data.Heuristic)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, loadError(err, "load heuristic")
		}
	}

	if data.Coordinates != "" {
		coords, err := wio.ImportCoordinates(data.Coordinates)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, loadError(err, "load coordinates")
		}
		if coords != nil {
			pos = coords
		}
	}

	return NewDataset(g, h, pos)
}

func loadEdges(path string) (*graph.Graph, graph.Positions, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		g, err := wio.ImportEdges(path)
		return g, nil, err
	}
	g, pos, err := wio.ImportJSON(path)
	if err != nil {
		return nil, nil, err
	}
	if len(pos) == 0 {
		pos = nil
	}
	return g, pos, nil
}

// Estimator returns the heuristic as a [heuristic.Estimator], or nil when
// the dataset has none.
func (d *Dataset) Estimator() heuristic.Estimator {
	if d.Heuristic == nil {
		return nil
	}
	return d.Heuristic
}

// Resolve maps a user-supplied node name to a node of the graph. An exact
// match wins; otherwise a unique case-insensitive match is accepted, so
// "lisbon" finds "Lisbon".
func (d *Dataset) Resolve(name string) (string, error) {
	if err := werrors.ValidateNodeName(name); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if d.Graph.HasNode(name) {
		return name, nil
	}

	var match string
	for _, id := range d.Graph.Nodes() {
		if strings.EqualFold(id, name) {
			if match != "" {
				return "", werrors.New(werrors.ErrCodeInvalidInput, "node name %q is ambiguous (%s, %s)", name, match, id)
			}
			match = id
		}
	}
	if match == "" {
		return "", werrors.Wrap(werrors.ErrCodeNodeNotFound, graph.ErrNodeNotFound, "unknown location %q", name)
	}
	return match, nil
}

func loadError(err error, msg string) error {
	return werrors.Wrap(werrors.Classify(err), err, "%s", msg)
}

// fingerprint hashes the JSON export of the graph with positions, followed
// by the heuristic entries.
func fingerprint(d *Dataset) (string, error) {
	var buf bytes.Buffer
	if err := wio.WriteJSON(d.Graph, d.Positions, &buf); err != nil {
		return "", err
	}
	if d.Heuristic != nil {
		if err := json.NewEncoder(&buf).Encode(d.Heuristic.Entries()); err != nil {
			return "", fmt.Errorf("encode heuristic: %w", err)
		}
	}
	return cache.Hash(buf.Bytes()), nil
}
