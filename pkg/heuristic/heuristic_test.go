package heuristic

import (
	"errors"
	"math"
	"testing"
)

func TestLookupFallback(t *testing.T) {
	h := New()
	if err := h.SetEntry("A", "B", 5); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		a, b    string
		want    float64
		wantErr error
	}{
		{name: "Direct", a: "A", b: "B", want: 5},
		{name: "Reverse", a: "B", b: "A", want: 5},
		{name: "Absent", a: "X", b: "Y", wantErr: ErrMissingHeuristic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Lookup(tt.a, tt.b)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Lookup(%s, %s) error = %v, want %v", tt.a, tt.b, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Lookup(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLookupPrefersDirectOrder(t *testing.T) {
	h := New()
	_ = h.SetEntry("A", "B", 5)
	_ = h.SetEntry("B", "A", 9)

	if got, _ := h.Lookup("A", "B"); got != 5 {
		t.Errorf("Lookup(A, B) = %v, want 5", got)
	}
	if got, _ := h.Lookup("B", "A"); got != 9 {
		t.Errorf("Lookup(B, A) = %v, want 9", got)
	}
}

func TestMissingCellFallsBack(t *testing.T) {
	h := New()
	h.SetMissing("A", "B")
	_ = h.SetEntry("B", "A", 4)

	if got, err := h.Lookup("A", "B"); err != nil || got != 4 {
		t.Errorf("Lookup(A, B) = %v, %v, want 4, nil", got, err)
	}

	h.SetMissing("B", "A")
	if _, err := h.Lookup("A", "B"); !errors.Is(err, ErrMissingHeuristic) {
		t.Errorf("Lookup(A, B) error = %v, want ErrMissingHeuristic", err)
	}
	if h.Has("A", "B") {
		t.Error("Has(A, B) = true with both cells missing")
	}
}

func TestZeroIsNotMissing(t *testing.T) {
	h := New()
	_ = h.SetEntry("A", "A", 0)
	if got, err := h.Lookup("A", "A"); err != nil || got != 0 {
		t.Errorf("Lookup(A, A) = %v, %v, want 0, nil", got, err)
	}
}

func TestSetEntryRejectsInvalid(t *testing.T) {
	h := New()
	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		if err := h.SetEntry("A", "B", v); !errors.Is(err, ErrInvalidEstimate) {
			t.Errorf("SetEntry(%v) error = %v, want ErrInvalidEstimate", v, err)
		}
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestEntriesSorted(t *testing.T) {
	h := New()
	_ = h.SetEntry("b", "a", 2)
	h.SetMissing("a", "c")
	_ = h.SetEntry("a", "b", 1)

	got := h.Entries()
	want := []Entry{
		{A: "a", B: "b", Value: 1},
		{A: "a", B: "c", Missing: true},
		{A: "b", B: "a", Value: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("Entries() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
