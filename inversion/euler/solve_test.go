package euler

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-euler/field/synth"
	"github.com/cwbudde/algo-euler/internal/testutil"
)

func TestSolveFlatWindowIsSingular(t *testing.T) {
	n := 9
	s := &Samples{
		Data: make([]float64, n),
		DX:   make([]float64, n),
		DY:   make([]float64, n),
		DZ:   make([]float64, n),
		X:    make([]float64, n),
		Y:    make([]float64, n),
		Z:    make([]float64, n),
	}
	for i := range n {
		s.Data[i] = 100
		s.X[i] = float64(i / 3)
		s.Y[i] = float64(i % 3)
	}

	sol, err := NewSolver(0).Solve(s, 2)
	if !errors.Is(err, ErrSingularSystem) {
		t.Fatalf("error = %v, want ErrSingularSystem", err)
	}

	if sol.Solved || !math.IsNaN(sol.X) || !math.IsNaN(sol.Z) || !math.IsNaN(sol.Base) {
		t.Fatalf("flat window produced %+v", sol)
	}

	if sol.Sigma != 0 {
		t.Fatalf("sigma = %v, want 0", sol.Sigma)
	}
}

func TestSolveCollinearColumnsAreSingular(t *testing.T) {
	n := 9
	s := &Samples{
		Data: make([]float64, n),
		DX:   make([]float64, n),
		DY:   make([]float64, n),
		DZ:   make([]float64, n),
		X:    make([]float64, n),
		Y:    make([]float64, n),
		Z:    make([]float64, n),
	}
	for i := range n {
		s.Data[i] = float64(i)
		s.DX[i] = 1
		s.DY[i] = 2
		s.DZ[i] = 0.5
		s.X[i] = float64(i / 3)
		s.Y[i] = float64(i % 3)
	}

	if _, err := NewSolver(0).Solve(s, 1); !errors.Is(err, ErrSingularSystem) {
		t.Fatalf("error = %v, want ErrSingularSystem", err)
	}
}

func TestSolveRecoversPointMass(t *testing.T) {
	g := regularGrid(t, 21, 21, 50)
	src := synth.Source{Kind: synth.PointMass, X: 500, Y: 500, Z: 200, Amplitude: 1e6}

	data, d := pointMassFields(t, g, src, 10)

	f, err := NewFields(data, d)
	if err != nil {
		t.Fatalf("NewFields error: %v", err)
	}

	solver := NewSolver(0)

	for _, w := range []Window{
		{Row: 8, Col: 8, Size: 5},
		{Row: 6, Col: 9, Size: 5},
		{Row: 9, Col: 9, Size: 3},
	} {
		var s Samples
		f.Gather(w, &s)

		sol, err := solver.Solve(&s, src.Kind.StructuralIndex())
		if err != nil {
			t.Fatalf("window %+v: %v", w, err)
		}

		if !sol.Solved {
			t.Fatalf("window %+v unsolved", w)
		}

		testutil.RequireFinite(t, []float64{sol.X, sol.Y, sol.Z, sol.Base, sol.Sigma})
		testutil.RequireNearlyEqual(t, "x0", sol.X, src.X, 1e-3)
		testutil.RequireNearlyEqual(t, "y0", sol.Y, src.Y, 1e-3)
		testutil.RequireNearlyEqual(t, "z0", sol.Z, src.Z, 1e-3)
		testutil.RequireNearlyEqual(t, "base", sol.Base, 10, 1e-4)
	}
}

func TestSolveSigmaIsSampleStdDev(t *testing.T) {
	g := regularGrid(t, 9, 9, 50)
	src := synth.Source{Kind: synth.VerticalDipole, X: 200, Y: 200, Z: 150, Amplitude: 1e9}

	data, d := pointMassFields(t, g, src, 0)

	f, err := NewFields(data, d)
	if err != nil {
		t.Fatal(err)
	}

	var s Samples
	f.Gather(Window{Row: 2, Col: 2, Size: 5}, &s)

	mean := 0.0
	for _, v := range s.DZ {
		mean += v
	}
	mean /= float64(len(s.DZ))

	ss := 0.0
	for _, v := range s.DZ {
		ss += (v - mean) * (v - mean)
	}
	want := math.Sqrt(ss / float64(len(s.DZ)-1))

	sol, err := NewSolver(0).Solve(&s, 3)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}

	testutil.RequireNearlyEqual(t, "sigma", sol.Sigma, want, 1e-12*math.Max(1, want))
	testutil.RequireNearlyEqual(t, "z0", sol.Z, src.Z, 1e-3)
}

func TestSolverReusedAcrossWindowSizes(t *testing.T) {
	g := regularGrid(t, 15, 15, 100)
	src := synth.Source{Kind: synth.PointMass, X: 700, Y: 700, Z: 300, Amplitude: 5e6}

	data, d := pointMassFields(t, g, src, 0)

	f, err := NewFields(data, d)
	if err != nil {
		t.Fatal(err)
	}

	solver := NewSolver(0)
	for _, size := range []int{3, 7, 5, 3} {
		var s Samples
		f.Gather(Window{Row: 7 - size/2, Col: 7 - size/2, Size: size}, &s)

		sol, err := solver.Solve(&s, 2)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}

		testutil.RequireNearlyEqual(t, "z0", sol.Z, src.Z, 1e-3)
	}
}
