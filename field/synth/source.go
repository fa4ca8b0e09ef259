package synth

import (
	"fmt"
	"math"
)

// Kind identifies a source geometry.
type Kind int

const (
	// PointMass is the vertical attraction of a point mass. SI 2.
	PointMass Kind = iota
	// VerticalDipole is the vertical field of a vertically polarised dipole
	// (the second vertical derivative of 1/r). SI 3.
	VerticalDipole
	// LineMass is the vertical attraction of an infinite horizontal line
	// running along the easting (Y) axis. SI 1.
	LineMass
)

var kindNames = map[Kind]string{
	PointMass:      "point-mass",
	VerticalDipole: "vertical-dipole",
	LineMass:       "line-mass",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a kind from its String form.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("synth: unknown source kind %q", s)
}

// StructuralIndex returns the Euler structural index of the geometry.
func (k Kind) StructuralIndex() float64 {
	switch k {
	case PointMass:
		return 2
	case VerticalDipole:
		return 3
	case LineMass:
		return 1
	default:
		return math.NaN()
	}
}

// Source is a buried anomaly source. X is northing, Y easting and Z the
// depth (positive down) of the source.
type Source struct {
	Kind      Kind
	X         float64
	Y         float64
	Z         float64
	Amplitude float64
}

// Field returns the anomaly observed at (x, y, z).
func (s Source) Field(x, y, z float64) float64 {
	dx, dy, dz := x-s.X, y-s.Y, z-s.Z
	a := s.Amplitude

	switch s.Kind {
	case PointMass:
		r2 := dx*dx + dy*dy + dz*dz
		return -a * dz / (r2 * math.Sqrt(r2))
	case VerticalDipole:
		r2 := dx*dx + dy*dy + dz*dz
		return a * (3*dz*dz - r2) / (r2 * r2 * math.Sqrt(r2))
	case LineMass:
		p2 := dx*dx + dz*dz
		return -2 * a * dz / p2
	default:
		return math.NaN()
	}
}

// Gradient returns the analytic x, y and z derivatives of Field at (x, y, z).
func (s Source) Gradient(x, y, z float64) (gx, gy, gz float64) {
	dx, dy, dz := x-s.X, y-s.Y, z-s.Z
	a := s.Amplitude

	switch s.Kind {
	case PointMass:
		r2 := dx*dx + dy*dy + dz*dz
		r5 := r2 * r2 * math.Sqrt(r2)
		gx = 3 * a * dx * dz / r5
		gy = 3 * a * dy * dz / r5
		gz = a * (3*dz*dz - r2) / r5
	case VerticalDipole:
		r2 := dx*dx + dy*dy + dz*dz
		r7 := r2 * r2 * r2 * math.Sqrt(r2)
		gx = 3 * a * dx * (r2 - 5*dz*dz) / r7
		gy = 3 * a * dy * (r2 - 5*dz*dz) / r7
		gz = 3 * a * dz * (3*r2 - 5*dz*dz) / r7
	case LineMass:
		p2 := dx*dx + dz*dz
		p4 := p2 * p2
		gx = 4 * a * dx * dz / p4
		gz = 2 * a * (dz*dz - dx*dx) / p4
	default:
		return math.NaN(), math.NaN(), math.NaN()
	}

	return gx, gy, gz
}
