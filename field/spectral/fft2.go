package spectral

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Transform2D computes 2-D DFTs of N×N row-major complex buffers by running
// a 1-D plan over every row and then every column. The inverse is
// normalised so that Inverse(Forward(x)) == x.
//
// A Transform2D holds scratch memory and is not safe for concurrent use.
type Transform2D struct {
	n    int
	plan *algofft.Plan[complex128]
	in   []complex128
	out  []complex128
}

// NewTransform2D creates a transform for N×N buffers.
func NewTransform2D(n int) (*Transform2D, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectral: failed to create FFT plan: %w", err)
	}

	return &Transform2D{
		n:    n,
		plan: plan,
		in:   make([]complex128, n),
		out:  make([]complex128, n),
	}, nil
}

// Size returns N.
func (t *Transform2D) Size() int {
	return t.n
}

// Forward writes the 2-D DFT of src into dst. dst and src may alias.
func (t *Transform2D) Forward(dst, src []complex128) error {
	return t.apply(dst, src, false)
}

// Inverse writes the normalised inverse 2-D DFT of src into dst.
func (t *Transform2D) Inverse(dst, src []complex128) error {
	return t.apply(dst, src, true)
}

func (t *Transform2D) apply(dst, src []complex128, inverse bool) error {
	n := t.n
	if len(dst) != n*n || len(src) != n*n {
		return fmt.Errorf("%w: got dst=%d src=%d, want %d", ErrBufferSize, len(dst), len(src), n*n)
	}

	if &dst[0] != &src[0] {
		copy(dst, src)
	}

	run := func() error {
		if inverse {
			return t.plan.Inverse(t.out, t.in)
		}
		return t.plan.Forward(t.out, t.in)
	}

	// Rows
	for r := range n {
		row := dst[r*n : (r+1)*n]
		copy(t.in, row)

		if err := run(); err != nil {
			return err
		}

		copy(row, t.out)
	}

	// Columns
	for c := range n {
		for r := range n {
			t.in[r] = dst[r*n+c]
		}

		if err := run(); err != nil {
			return err
		}

		for r := range n {
			dst[r*n+c] = t.out[r]
		}
	}

	return nil
}
