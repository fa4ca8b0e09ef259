package euler

import (
	"fmt"
	"iter"

	"github.com/cwbudde/algo-euler/field/core"
	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/field/spectral"
)

// Window is a Size×Size block anchored at its top-left cell.
type Window struct {
	Row  int
	Col  int
	Size int
}

// Center returns the cell the window's solution is attributed to.
func (w Window) Center() (row, col int) {
	return w.Row + w.Size/2, w.Col + w.Size/2
}

// Windows yields every fully contained window of a grid in row-major
// order with unit stride. The sequence is finite and can be iterated
// again.
func Windows(shape grid.Shape, size int) iter.Seq[Window] {
	return windowsInRows(shape, size, 0, shape.Rows-size+1)
}

// windowsInRows yields the windows anchored on rows [r0, r1).
func windowsInRows(shape grid.Shape, size, r0, r1 int) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		if size <= 0 {
			return
		}

		last := shape.Cols - size
		for r := max(r0, 0); r < r1 && r+size <= shape.Rows; r++ {
			for c := 0; c <= last; c++ {
				if !yield(Window{Row: r, Col: c, Size: size}) {
					return
				}
			}
		}
	}
}

// Fields bundles a grid with its derivatives in one row-major layout.
type Fields struct {
	Shape grid.Shape

	Data []float64
	DX   []float64
	DY   []float64
	DZ   []float64
	X    []float64
	Y    []float64
	Z    []float64
}

// NewFields pairs a grid with its derivative triple.
func NewFields(g *grid.Grid, d spectral.Derivatives) (*Fields, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	n := g.Shape.Size()
	if len(d.X) != n || len(d.Y) != n || len(d.Z) != n {
		return nil, fmt.Errorf("%w: got %d/%d/%d values, want %d",
			ErrFieldsMismatch, len(d.X), len(d.Y), len(d.Z), n)
	}

	return &Fields{
		Shape: g.Shape,
		Data:  g.Data,
		DX:    d.X,
		DY:    d.Y,
		DZ:    d.Z,
		X:     g.X,
		Y:     g.Y,
		Z:     g.Z,
	}, nil
}

// Samples holds the values of one window, flattened row-major.
type Samples struct {
	Data []float64
	DX   []float64
	DY   []float64
	DZ   []float64
	X    []float64
	Y    []float64
	Z    []float64
}

// Len returns the number of samples.
func (s *Samples) Len() int {
	return len(s.Data)
}

// Gather copies the cells covered by w into dst, reusing its capacity.
func (f *Fields) Gather(w Window, dst *Samples) {
	n := w.Size * w.Size

	dst.Data = core.EnsureLen(dst.Data, n)
	dst.DX = core.EnsureLen(dst.DX, n)
	dst.DY = core.EnsureLen(dst.DY, n)
	dst.DZ = core.EnsureLen(dst.DZ, n)
	dst.X = core.EnsureLen(dst.X, n)
	dst.Y = core.EnsureLen(dst.Y, n)
	dst.Z = core.EnsureLen(dst.Z, n)

	k := 0
	for r := w.Row; r < w.Row+w.Size; r++ {
		lo := f.Shape.Index(r, w.Col)
		hi := lo + w.Size

		copy(dst.Data[k:], f.Data[lo:hi])
		copy(dst.DX[k:], f.DX[lo:hi])
		copy(dst.DY[k:], f.DY[lo:hi])
		copy(dst.DZ[k:], f.DZ[lo:hi])
		copy(dst.X[k:], f.X[lo:hi])
		copy(dst.Y[k:], f.Y[lo:hi])
		copy(dst.Z[k:], f.Z[lo:hi])

		k += w.Size
	}
}
