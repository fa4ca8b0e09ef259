package region

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/inversion/euler"
)

// Region errors.
var (
	ErrInvalidBox     = errors.New("region: box needs south < north and west < east")
	ErrLengthMismatch = errors.New("region: coordinate and value columns differ in length")
)

// Box is a rectangular mask [south, north, west, east].
type Box struct {
	South float64
	North float64
	West  float64
	East  float64
}

// BoxFromSlice reads a box from the [south, north, west, east] layout.
func BoxFromSlice(v []float64) (Box, error) {
	if len(v) != 4 {
		return Box{}, fmt.Errorf("%w: need 4 values, got %d", ErrInvalidBox, len(v))
	}

	b := Box{South: v[0], North: v[1], West: v[2], East: v[3]}

	return b, b.Validate()
}

// BoxFromArea returns the box covering a grid area.
func BoxFromArea(a grid.Area) Box {
	return Box{South: a.South, North: a.North, West: a.West, East: a.East}
}

// Validate checks the box orientation.
func (b Box) Validate() error {
	if !(b.South < b.North) || !(b.West < b.East) {
		return fmt.Errorf("%w: %v", ErrInvalidBox, b.Slice())
	}

	return nil
}

// Contains reports whether (x, y) lies strictly inside the box.
func (b Box) Contains(x, y float64) bool {
	return x > b.South && x < b.North && y > b.West && y < b.East
}

// Slice returns the box as [south, north, west, east].
func (b Box) Slice() []float64 {
	return []float64{b.South, b.North, b.West, b.East}
}

// Column holds the statistics of one estimate column.
type Column struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

func emptyColumn() Column {
	nan := math.NaN()
	return Column{Mean: nan, Std: nan, Min: nan, Max: nan}
}

// Stats summarises the (x, y, z, b) columns of the estimates inside a box.
// With Count == 0 every column is NaN.
type Stats struct {
	Count int
	X     Column
	Y     Column
	Z     Column
	Base  Column
}

// Summarize returns per-column statistics of the values whose (xs[i], ys[i])
// fall inside box. Rows with a NaN value in any column are skipped.
func Summarize(xs, ys []float64, cols [][]float64, box Box) ([]Column, int, error) {
	if err := box.Validate(); err != nil {
		return nil, 0, err
	}

	if len(xs) != len(ys) {
		return nil, 0, fmt.Errorf("%w: %d x, %d y", ErrLengthMismatch, len(xs), len(ys))
	}

	for i, c := range cols {
		if len(c) != len(xs) {
			return nil, 0, fmt.Errorf("%w: column %d has %d values, want %d",
				ErrLengthMismatch, i, len(c), len(xs))
		}
	}

	picked := make([][]float64, len(cols))

	count := 0
rows:
	for i := range xs {
		if !box.Contains(xs[i], ys[i]) {
			continue
		}

		for _, c := range cols {
			if math.IsNaN(c[i]) {
				continue rows
			}
		}

		for j, c := range cols {
			picked[j] = append(picked[j], c[i])
		}
		count++
	}

	out := make([]Column, len(cols))
	for j, v := range picked {
		if len(v) == 0 {
			out[j] = emptyColumn()
			continue
		}

		mean, std := stat.PopMeanStdDev(v, nil)
		out[j] = Column{Mean: mean, Std: std, Min: floats.Min(v), Max: floats.Max(v)}
	}

	return out, count, nil
}

// Classic summarises a classic estimate set. The box is tested against
// the estimated positions (x₀, y₀); unsolved rows are skipped.
func Classic(est []euler.Estimate, box Box) (Stats, error) {
	cols := estimateColumns(est)
	return summarizeEstimates(cols[0], cols[1], cols, box)
}

// Plateau summarises a plateau estimate set. The box is tested against the
// grid cell coordinates, which must align with est row by row.
func Plateau(est []euler.Estimate, gridX, gridY []float64, box Box) (Stats, error) {
	if len(gridX) != len(est) || len(gridY) != len(est) {
		return Stats{}, fmt.Errorf("%w: %d estimates, %d x, %d y",
			ErrLengthMismatch, len(est), len(gridX), len(gridY))
	}

	return summarizeEstimates(gridX, gridY, estimateColumns(est), box)
}

// estimateColumns splits est into x, y, z and b columns. Unsolved rows
// become NaN so Summarize drops them.
func estimateColumns(est []euler.Estimate) [][]float64 {
	cols := make([][]float64, 4)
	for j := range cols {
		cols[j] = make([]float64, len(est))
	}

	nan := math.NaN()
	for i, e := range est {
		row := e.Row()
		for j := range cols {
			if e.Solved {
				cols[j][i] = row[j]
			} else {
				cols[j][i] = nan
			}
		}
	}

	return cols
}

func summarizeEstimates(xs, ys []float64, cols [][]float64, box Box) (Stats, error) {
	out, count, err := Summarize(xs, ys, cols, box)
	if err != nil {
		return Stats{}, err
	}

	return Stats{Count: count, X: out[0], Y: out[1], Z: out[2], Base: out[3]}, nil
}
