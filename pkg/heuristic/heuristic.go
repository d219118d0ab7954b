// Package heuristic stores precomputed remaining-distance estimates between
// pairs of nodes, typically straight-line distances between cities.
//
// The table is conceptually symmetric (h(a, b) == h(b, a)) but physically
// sparse: source matrices often fill only one triangle, and individual cells
// can be explicitly missing. [Table.Lookup] therefore checks (a, b) first and
// falls back to (b, a). The fallback order is part of the contract; values are
// never summed or averaged.
//
//	h := heuristic.New()
//	_ = h.SetEntry("Faro", "Porto", 450)
//	v, _ := h.Lookup("Porto", "Faro") // 450 via the (b, a) fallback
package heuristic

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

var (
	// ErrMissingHeuristic is returned by [Table.Lookup] when neither ordering
	// of a pair holds an estimate.
	ErrMissingHeuristic = errors.New("missing heuristic")

	// ErrInvalidEstimate is returned by [Table.SetEntry] for negative, NaN or
	// infinite values. Use [Table.SetMissing] to record a gap.
	ErrInvalidEstimate = errors.New("invalid heuristic estimate")
)

// Estimator is the read side of a heuristic table.
type Estimator interface {
	Lookup(a, b string) (float64, error)
}

type pair struct{ a, b string }

// cell is either a value or an explicit gap.
type cell struct {
	value   float64
	missing bool
}

// Entry is one stored ordered pair. Missing is true for explicit gaps.
type Entry struct {
	A, B    string
	Value   float64
	Missing bool
}

// Table is a sparse, possibly one-sided heuristic matrix. It is safe for
// concurrent readers once populated.
type Table struct {
	cells map[pair]cell
}

// New creates an empty table.
func New() *Table {
	return &Table{cells: make(map[pair]cell)}
}

// SetEntry stores the estimate for the ordered pair (a, b), replacing any
// previous value or gap.
func (t *Table) SetEntry(a, b string, value float64) error {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %v for (%s, %s)", ErrInvalidEstimate, value, a, b)
	}
	t.cells[pair{a, b}] = cell{value: value}
	return nil
}

// SetMissing marks the ordered pair (a, b) as an explicit gap. A gap behaves
// like an absent entry during lookup, so the reverse ordering is consulted.
func (t *Table) SetMissing(a, b string) {
	t.cells[pair{a, b}] = cell{missing: true}
}

// Lookup returns the estimate for (a, b), falling back to (b, a).
func (t *Table) Lookup(a, b string) (float64, error) {
	if c, ok := t.cells[pair{a, b}]; ok && !c.missing {
		return c.value, nil
	}
	if c, ok := t.cells[pair{b, a}]; ok && !c.missing {
		return c.value, nil
	}
	return 0, fmt.Errorf("%w: (%s, %s)", ErrMissingHeuristic, a, b)
}

// Has reports whether Lookup(a, b) would succeed.
func (t *Table) Has(a, b string) bool {
	_, err := t.Lookup(a, b)
	return err == nil
}

// Len returns the number of stored cells, gaps included.
func (t *Table) Len() int { return len(t.cells) }

// Entries returns every stored cell sorted by (A, B).
func (t *Table) Entries() []Entry {
	keys := slices.SortedFunc(maps.Keys(t.cells), func(x, y pair) int {
		if c := cmp.Compare(x.a, y.a); c != 0 {
			return c
		}
		return cmp.Compare(x.b, y.b)
	})
	out := make([]Entry, len(keys))
	for i, k := range keys {
		c := t.cells[k]
		out[i] = Entry{A: k.a, B: k.b, Value: c.value, Missing: c.missing}
	}
	return out
}
