package spectral

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-euler/field/core"
	"github.com/cwbudde/algo-euler/field/grid"
)

// ErrBufferSize is returned when a buffer does not match the padded size.
var ErrBufferSize = errors.New("spectral: buffer size does not match padded size")

// Padded is a grid padded to an N×N square by edge replication.
//
// Mask is true for the cells that hold original data. When N-Rows (or
// N-Cols) is odd the extra row (column) goes to the higher-index side, so
// Top = floor((N-Rows)/2) and Left = floor((N-Cols)/2).
type Padded struct {
	Data  []float64
	Mask  []bool
	N     int
	Shape grid.Shape
	Top   int
	Left  int
}

// Pad replicates the edge values of a row-major grid out to an N×N square,
// N = 2^ceil(log2(max(rows, cols))).
func Pad(data []float64, shape grid.Shape) (*Padded, error) {
	if shape.Rows <= 0 || shape.Cols <= 0 {
		return nil, fmt.Errorf("%w: %v", grid.ErrInvalidShape, shape)
	}

	if len(data) != shape.Size() {
		return nil, fmt.Errorf("%w: %d values for shape %v", grid.ErrShapeMismatch, len(data), shape)
	}

	n := core.NextPowerOfTwo(shape.Max())
	p := &Padded{
		Data:  make([]float64, n*n),
		Mask:  make([]bool, n*n),
		N:     n,
		Shape: shape,
		Top:   (n - shape.Rows) / 2,
		Left:  (n - shape.Cols) / 2,
	}

	for r := range n {
		sr := r - p.Top
		inRow := sr >= 0 && sr < shape.Rows
		sr = core.ClampIndex(sr, shape.Rows)

		for c := range n {
			sc := c - p.Left
			inCol := sc >= 0 && sc < shape.Cols
			sc = core.ClampIndex(sc, shape.Cols)

			p.Data[r*n+c] = data[sr*shape.Cols+sc]
			p.Mask[r*n+c] = inRow && inCol
		}
	}

	return p, nil
}

// Unpad selects the masked cells of an N×N buffer in row-major order,
// restoring the original grid layout.
func (p *Padded) Unpad(buf []float64) ([]float64, error) {
	if len(buf) != p.N*p.N {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBufferSize, len(buf), p.N*p.N)
	}

	out := make([]float64, 0, p.Shape.Size())
	for i, keep := range p.Mask {
		if keep {
			out = append(out, buf[i])
		}
	}

	return out, nil
}
