package spectral

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-euler/field/grid"
)

func TestPadRoundTrip(t *testing.T) {
	shapes := []grid.Shape{
		{Rows: 2, Cols: 2},
		{Rows: 10, Cols: 10},
		{Rows: 5, Cols: 12},
		{Rows: 17, Cols: 3},
		{Rows: 120, Cols: 140},
		{Rows: 64, Cols: 64},
	}

	for _, shape := range shapes {
		t.Run(shape.String(), func(t *testing.T) {
			data := make([]float64, shape.Size())
			for i := range data {
				data[i] = float64(i)*0.5 - 7
			}

			p, err := Pad(data, shape)
			if err != nil {
				t.Fatalf("Pad error: %v", err)
			}

			if p.N*p.N != len(p.Data) || p.N < shape.Max() {
				t.Fatalf("padded size %d for N=%d", len(p.Data), p.N)
			}

			count := 0
			for _, m := range p.Mask {
				if m {
					count++
				}
			}
			if count != shape.Size() {
				t.Fatalf("mask has %d true cells, want %d", count, shape.Size())
			}

			got, err := p.Unpad(p.Data)
			if err != nil {
				t.Fatalf("Unpad error: %v", err)
			}

			for i := range data {
				if got[i] != data[i] {
					t.Fatalf("index %d: got %v, want %v", i, got[i], data[i])
				}
			}
		})
	}
}

func TestPadEdgeReplication(t *testing.T) {
	// 3x3 pads to 4x4: one extra row/column on the high-index side.
	data := []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}

	p, err := Pad(data, grid.Shape{Rows: 3, Cols: 3})
	if err != nil {
		t.Fatal(err)
	}

	if p.N != 4 || p.Top != 0 || p.Left != 0 {
		t.Fatalf("N=%d Top=%d Left=%d, want 4 0 0", p.N, p.Top, p.Left)
	}

	want := []float64{
		1, 2, 3, 3,
		4, 5, 6, 6,
		7, 8, 9, 9,
		7, 8, 9, 9,
	}

	for i := range want {
		if p.Data[i] != want[i] {
			t.Fatalf("Data[%d] = %v, want %v (%v)", i, p.Data[i], want[i], p.Data)
		}
	}
}

func TestPadSplitsOddPadding(t *testing.T) {
	// 5 rows in 8: 1 above, 2 below. 6 cols in 8: 1 left, 1 right.
	p, err := Pad(make([]float64, 30), grid.Shape{Rows: 5, Cols: 6})
	if err != nil {
		t.Fatal(err)
	}

	if p.N != 8 || p.Top != 1 || p.Left != 1 {
		t.Fatalf("N=%d Top=%d Left=%d, want 8 1 1", p.N, p.Top, p.Left)
	}

	if p.Mask[0] || !p.Mask[1*8+1] || p.Mask[6*8+1] || !p.Mask[5*8+6] || p.Mask[5*8+7] {
		t.Fatal("mask does not match the documented placement")
	}
}

func TestPadErrors(t *testing.T) {
	if _, err := Pad(make([]float64, 5), grid.Shape{Rows: 2, Cols: 2}); !errors.Is(err, grid.ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}

	p, err := Pad(make([]float64, 4), grid.Shape{Rows: 2, Cols: 2})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := p.Unpad(make([]float64, 3)); !errors.Is(err, ErrBufferSize) {
		t.Fatalf("err = %v, want ErrBufferSize", err)
	}
}
