package euler

import (
	"container/heap"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-euler/field/core"
	"github.com/cwbudde/algo-euler/field/grid"
)

// Estimate is one output row (x₀, y₀, z₀, b). Unsolved rows carry NaN
// values and Solved == false.
type Estimate struct {
	X      float64
	Y      float64
	Z      float64
	Base   float64
	Solved bool
}

// Row returns the estimate in the (x, y, z, b) column layout.
func (e Estimate) Row() [4]float64 {
	return [4]float64{e.X, e.Y, e.Z, e.Base}
}

func estimateOf(s Solution) Estimate {
	return Estimate{X: s.X, Y: s.Y, Z: s.Z, Base: s.Base, Solved: s.Solved}
}

// interiorCount returns the number of fully contained windows.
func interiorCount(shape grid.Shape, size int) int {
	d := size / 2
	rows, cols := shape.Rows-2*d, shape.Cols-2*d
	if rows <= 0 || cols <= 0 {
		return 0
	}

	return rows * cols
}

// classicCount returns floor(n·filt).
func classicCount(n int, filt float64) int {
	if n <= 0 || !(filt > 0) {
		return 0
	}

	return int(math.Floor(float64(n) * filt))
}

// Assemble splits a sweep into its classic and plateau estimate sets.
//
// The plateau set has one row per grid cell: the interior solutions with
// the border filled from the nearest interior cell. The classic set holds
// the first floor(N·filt) interior solutions ordered by rank.
func Assemble(raw *Raw, filt float64, rank Ranking) (classic, plateau []Estimate, err error) {
	if raw == nil || len(raw.Cells) != raw.Shape.Size() {
		return nil, nil, fmt.Errorf("%w: raw sweep does not cover its grid", ErrFieldsMismatch)
	}

	if !(filt > 0 && filt <= 1) {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFilter, filt)
	}

	interior := raw.Interior()

	k := classicCount(len(interior), filt)
	if k == 0 {
		return nil, nil, fmt.Errorf("%w: filter %v of %d interior windows",
			ErrEmptyFilterResult, filt, len(interior))
	}

	return selectClassic(interior, k, rank), plateauOf(raw, interior), nil
}

// plateauOf edge-replicates the interior back to the full grid.
func plateauOf(raw *Raw, interior []Solution) []Estimate {
	d := raw.Delta()
	ih := raw.Shape.Rows - 2*d
	iw := raw.Shape.Cols - 2*d

	out := make([]Estimate, 0, raw.Shape.Size())
	for r := range raw.Shape.Rows {
		ir := core.ClampIndex(r-d, ih)
		for c := range raw.Shape.Cols {
			ic := core.ClampIndex(c-d, iw)
			out = append(out, estimateOf(interior[ir*iw+ic]))
		}
	}

	return out
}

// ranked is an interior solution with its row-major position.
type ranked struct {
	index int
	sol   Solution
}

// before reports whether a ranks ahead of b. Solved rows precede unsolved
// ones, then σ decides by rank, then the row-major position.
func (rank Ranking) before(a, b ranked) bool {
	if a.sol.Solved != b.sol.Solved {
		return a.sol.Solved
	}

	if a.sol.Solved && a.sol.Sigma != b.sol.Sigma {
		if rank == RankHighDispersion {
			return a.sol.Sigma > b.sol.Sigma
		}
		return a.sol.Sigma < b.sol.Sigma
	}

	return a.index < b.index
}

// keepHeap holds the k best rows seen so far with the worst at the root.
type keepHeap struct {
	rank  Ranking
	items []ranked
}

func (h *keepHeap) Len() int           { return len(h.items) }
func (h *keepHeap) Less(i, j int) bool { return h.rank.before(h.items[j], h.items[i]) }
func (h *keepHeap) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *keepHeap) Push(x any)         { h.items = append(h.items, x.(ranked)) }

func (h *keepHeap) Pop() any {
	n := len(h.items)
	x := h.items[n-1]
	h.items = h.items[:n-1]
	return x
}

// selectClassic returns the k best interior solutions in rank order.
func selectClassic(interior []Solution, k int, rank Ranking) []Estimate {
	h := &keepHeap{rank: rank, items: make([]ranked, 0, k)}

	for i, s := range interior {
		cand := ranked{index: i, sol: s}

		switch {
		case h.Len() < k:
			heap.Push(h, cand)
		case rank.before(cand, h.items[0]):
			h.items[0] = cand
			heap.Fix(h, 0)
		}
	}

	slices.SortFunc(h.items, func(a, b ranked) int {
		switch {
		case rank.before(a, b):
			return -1
		case rank.before(b, a):
			return 1
		default:
			return 0
		}
	})

	out := make([]Estimate, len(h.items))
	for i, it := range h.items {
		out[i] = estimateOf(it.sol)
	}

	return out
}
