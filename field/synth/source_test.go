package synth

import (
	"math"
	"testing"
)

var allKinds = []Kind{PointMass, VerticalDipole, LineMass}

func TestSourcesSatisfyEulerEquation(t *testing.T) {
	points := [][3]float64{
		{100, 200, 0},
		{-350, 40, -25},
		{1200, -800, 10},
		{5, 5, 0},
	}

	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := Source{Kind: kind, X: 30, Y: -60, Z: 450, Amplitude: 1e6}
			si := kind.StructuralIndex()

			for _, p := range points {
				f := s.Field(p[0], p[1], p[2])
				gx, gy, gz := s.Gradient(p[0], p[1], p[2])

				lhs := (p[0]-s.X)*gx + (p[1]-s.Y)*gy + (p[2]-s.Z)*gz
				rhs := -si * f

				if math.Abs(lhs-rhs) > 1e-9*math.Max(1, math.Abs(rhs)) {
					t.Fatalf("at %v: homogeneity %v != %v", p, lhs, rhs)
				}
			}
		})
	}
}

func TestGradientMatchesFiniteDifference(t *testing.T) {
	const h = 1e-3

	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := Source{Kind: kind, X: 0, Y: 0, Z: 300, Amplitude: 5e5}
			x, y, z := 120.0, -75.0, 0.0

			gx, gy, gz := s.Gradient(x, y, z)
			fdx := (s.Field(x+h, y, z) - s.Field(x-h, y, z)) / (2 * h)
			fdy := (s.Field(x, y+h, z) - s.Field(x, y-h, z)) / (2 * h)
			fdz := (s.Field(x, y, z+h) - s.Field(x, y, z-h)) / (2 * h)

			for _, c := range []struct {
				name      string
				got, want float64
			}{
				{"x", gx, fdx}, {"y", gy, fdy}, {"z", gz, fdz},
			} {
				if math.Abs(c.got-c.want) > 1e-6*math.Max(1e-3, math.Abs(c.want)) {
					t.Fatalf("d/d%s = %v, finite difference %v", c.name, c.got, c.want)
				}
			}
		})
	}
}

func TestFieldSignAboveSource(t *testing.T) {
	for _, kind := range allKinds {
		s := Source{Kind: kind, Z: 500, Amplitude: 1}
		if f := s.Field(0, 0, 0); f <= 0 {
			t.Fatalf("%v: field above source = %v, want > 0", kind, f)
		}

		// The downward derivative grows toward the source.
		if _, _, gz := s.Gradient(0, 0, 0); gz <= 0 {
			t.Fatalf("%v: dz above source = %v, want > 0", kind, gz)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range allKinds {
		got, err := ParseKind(kind.String())
		if err != nil || got != kind {
			t.Fatalf("ParseKind(%q) = %v, %v", kind.String(), got, err)
		}
	}

	if _, err := ParseKind("sphere"); err == nil {
		t.Fatal("expected error for unknown kind")
	}

	if !math.IsNaN(Kind(42).StructuralIndex()) {
		t.Fatal("unknown kind must have NaN structural index")
	}
}
