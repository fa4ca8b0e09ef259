package euler

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/goleak"

	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/field/spectral"
	"github.com/cwbudde/algo-euler/field/synth"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func analyticFields(t testing.TB) *Fields {
	t.Helper()

	g := regularGrid(t, 17, 23, 50)
	src := synth.Source{Kind: synth.PointMass, X: 400, Y: 550, Z: 180, Amplitude: 2e6}

	data, d := pointMassFields(t, g, src, 5)

	f, err := NewFields(data, d)
	if err != nil {
		t.Fatalf("NewFields error: %v", err)
	}

	return f
}

func TestSweepWorkerCountDoesNotChangeResult(t *testing.T) {
	f := analyticFields(t)

	serial, err := Sweep(f, 2, 5, Options{Workers: 1, MaxCondition: 1e12})
	if err != nil {
		t.Fatalf("Sweep error: %v", err)
	}

	for _, workers := range []int{2, 3, 7, 64, 0} {
		parallel, err := Sweep(f, 2, 5, Options{Workers: workers, MaxCondition: 1e12})
		if err != nil {
			t.Fatalf("workers %d: %v", workers, err)
		}

		if diff := cmp.Diff(serial, parallel, cmpopts.EquateNaNs()); diff != "" {
			t.Fatalf("workers %d: mismatch (-serial +parallel):\n%s", workers, diff)
		}
	}
}

func TestSweepBorderStaysUnsolved(t *testing.T) {
	f := analyticFields(t)

	raw, err := Sweep(f, 2, 7, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	d := raw.Delta()
	for r := range f.Shape.Rows {
		for c := range f.Shape.Cols {
			border := r < d || c < d || r >= f.Shape.Rows-d || c >= f.Shape.Cols-d
			sol := raw.Cells[f.Shape.Index(r, c)]

			if border && (sol.Solved || !math.IsNaN(sol.X)) {
				t.Fatalf("border cell (%d, %d) = %+v", r, c, sol)
			}

			if !border && !sol.Solved {
				t.Fatalf("interior cell (%d, %d) unsolved", r, c)
			}
		}
	}

	if raw.Unsolved != 0 {
		t.Fatalf("Unsolved = %d, want 0", raw.Unsolved)
	}

	if got, want := len(raw.Interior()), (17-6)*(23-6); got != want {
		t.Fatalf("interior = %d, want %d", got, want)
	}
}

func TestSweepCountsSingularWindows(t *testing.T) {
	area := grid.Area{South: 0, North: 900, West: 0, East: 900}
	g := constantGrid(t, 10, 10, area, 100)

	n := g.Shape.Size()
	f, err := NewFields(g, spectral.Derivatives{X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n)})
	if err != nil {
		t.Fatal(err)
	}

	raw, err := Sweep(f, 1, 3, Options{Workers: 3})
	if err != nil {
		t.Fatal(err)
	}

	if raw.Unsolved != 64 {
		t.Fatalf("Unsolved = %d, want 64", raw.Unsolved)
	}
}

func TestSweepRejectsInvalidArguments(t *testing.T) {
	f := analyticFields(t)

	tests := []struct {
		name string
		si   float64
		size int
		want error
	}{
		{"even window", 2, 4, ErrInvalidWindow},
		{"small window", 2, 1, ErrInvalidWindow},
		{"window larger than grid", 2, 19, ErrInvalidWindow},
		{"zero SI", 0, 3, ErrInvalidStructuralIndex},
		{"NaN SI", math.NaN(), 3, ErrInvalidStructuralIndex},
		{"infinite SI", math.Inf(1), 3, ErrInvalidStructuralIndex},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Sweep(f, tc.si, tc.size, DefaultOptions()); !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := Sweep(nil, 2, 3, DefaultOptions()); !errors.Is(err, ErrFieldsMismatch) {
		t.Fatalf("nil fields error = %v", err)
	}
}
