package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/waypath/pkg/graph"
	"github.com/matzehuels/waypath/pkg/heuristic"
)

// ErrMalformed is wrapped by every parse error in this package.
var ErrMalformed = errors.New("malformed input")

// missingCells are the spellings of an explicit gap in a heuristic matrix.
var missingCells = map[string]bool{"": true, "nan": true, "na": true, "null": true}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	return cr
}

// records reads all records, trimming every field.
func records(cr *csv.Reader, visit func(line int, rec []string) error) error {
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		line, _ := cr.FieldPos(0)
		if err := visit(line, rec); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

// ReadEdges parses "nodeA,nodeB,weight" lines into a graph.
func ReadEdges(r io.Reader) (*graph.Graph, error) {
	g := graph.New()
	cr := newCSVReader(r)
	cr.FieldsPerRecord = 3

	err := records(cr, func(_ int, rec []string) error {
		w, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return fmt.Errorf("%w: weight %q: %w", ErrMalformed, rec[2], graph.ErrInvalidWeight)
		}
		return g.AddEdge(rec[0], rec[1], w)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ReadHeuristic parses a heuristic matrix. See the package documentation for
// the layout.
func ReadHeuristic(r io.Reader) (*heuristic.Table, error) {
	t := heuristic.New()
	cr := newCSVReader(r)

	var columns []string
	err := records(cr, func(_ int, rec []string) error {
		if columns == nil {
			if len(rec) < 2 {
				return fmt.Errorf("%w: header needs at least one node column", ErrMalformed)
			}
			columns = rec[1:]
			return nil
		}

		row := rec[0]
		if row == "" {
			return fmt.Errorf("%w: empty row name", ErrMalformed)
		}
		for i, raw := range rec[1:] {
			col := columns[i]
			if missingCells[strings.ToLower(raw)] {
				t.SetMissing(col, row)
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("%w: cell (%s, %s) = %q", ErrMalformed, col, row, raw)
			}
			if err := t.SetEntry(col, row, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if columns == nil {
		return nil, fmt.Errorf("%w: empty heuristic matrix", ErrMalformed)
	}
	return t, nil
}

// ReadCoordinates parses "node,x,y" lines.
func ReadCoordinates(r io.Reader) (graph.Positions, error) {
	pos := graph.Positions{}
	cr := newCSVReader(r)
	cr.FieldsPerRecord = 3

	err := records(cr, func(_ int, rec []string) error {
		x, errX := strconv.ParseFloat(rec[1], 64)
		y, errY := strconv.ParseFloat(rec[2], 64)
		if errX != nil || errY != nil || !finite(x) || !finite(y) {
			return fmt.Errorf("%w: coordinates of %s", ErrMalformed, rec[0])
		}
		pos[rec[0]] = graph.Point{X: x, Y: y}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pos, nil
}

// ImportEdges reads an edge list file.
func ImportEdges(path string) (*graph.Graph, error) {
	return importFile(path, ReadEdges)
}

// ImportHeuristic reads a heuristic matrix file.
func ImportHeuristic(path string) (*heuristic.Table, error) {
	return importFile(path, ReadHeuristic)
}

// ImportCoordinates reads a coordinates file.
func ImportCoordinates(path string) (graph.Positions, error) {
	return importFile(path, ReadCoordinates)
}

func importFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
