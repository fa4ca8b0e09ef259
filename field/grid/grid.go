package grid

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-euler/field/core"
)

// Grid errors.
var (
	ErrShapeMismatch = errors.New("grid: array length does not match shape")
	ErrInvalidShape  = errors.New("grid: shape needs at least 2 rows and 2 columns")
	ErrInvalidArea   = errors.New("grid: area needs south < north and west < east")
)

// Shape is the number of rows and columns of a grid.
type Shape struct {
	Rows int
	Cols int
}

// Size returns Rows*Cols.
func (s Shape) Size() int {
	return s.Rows * s.Cols
}

// Max returns the larger dimension.
func (s Shape) Max() int {
	return max(s.Rows, s.Cols)
}

// Min returns the smaller dimension.
func (s Shape) Min() int {
	return min(s.Rows, s.Cols)
}

// Index returns the row-major offset of (row, col).
func (s Shape) Index(row, col int) int {
	return row*s.Cols + col
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols)
}

// Area is the physical extent of a grid as [south, north, west, east].
type Area struct {
	South float64
	North float64
	West  float64
	East  float64
}

// AreaFromSlice builds an Area from a 4-element [south, north, west, east] slice.
func AreaFromSlice(v []float64) (Area, error) {
	if len(v) != 4 {
		return Area{}, fmt.Errorf("%w: want 4 values, got %d", ErrInvalidArea, len(v))
	}

	return Area{South: v[0], North: v[1], West: v[2], East: v[3]}, nil
}

// Validate reports whether the area spans a positive extent on both axes.
func (a Area) Validate() error {
	if !(a.South < a.North) || !(a.West < a.East) {
		return fmt.Errorf("%w: %v", ErrInvalidArea, a.Slice())
	}

	return nil
}

// Slice returns the area as [south, north, west, east].
func (a Area) Slice() []float64 {
	return []float64{a.South, a.North, a.West, a.East}
}

// Grid is a gridded field with its coordinates.
type Grid struct {
	Shape Shape
	Area  Area

	Data []float64
	X    []float64 // northing
	Y    []float64 // easting
	Z    []float64 // positive down
}

// New validates and wraps flat row-major arrays. The slices are not copied.
func New(data, x, y, z []float64, shape Shape, area Area) (*Grid, error) {
	g := &Grid{
		Shape: shape,
		Area:  area,
		Data:  data,
		X:     x,
		Y:     y,
		Z:     z,
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// Regular builds a grid whose coordinates are evenly spaced over area at a
// constant observation depth z. The data slice is zero-filled.
func Regular(shape Shape, area Area, z float64) (*Grid, error) {
	if shape.Rows < 2 || shape.Cols < 2 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, shape)
	}

	if err := area.Validate(); err != nil {
		return nil, err
	}

	n := shape.Size()
	g := &Grid{
		Shape: shape,
		Area:  area,
		Data:  make([]float64, n),
		X:     make([]float64, n),
		Y:     make([]float64, n),
		Z:     make([]float64, n),
	}

	xs := core.Linspace(area.South, area.North, shape.Rows)
	ys := core.Linspace(area.West, area.East, shape.Cols)

	for r := range shape.Rows {
		for c := range shape.Cols {
			i := shape.Index(r, c)
			g.X[i] = xs[r]
			g.Y[i] = ys[c]
			g.Z[i] = z
		}
	}

	return g, nil
}

// Validate checks the shape, the area and that every array has Rows*Cols entries.
func (g *Grid) Validate() error {
	if g.Shape.Rows < 2 || g.Shape.Cols < 2 {
		return fmt.Errorf("%w: %v", ErrInvalidShape, g.Shape)
	}

	if err := g.Area.Validate(); err != nil {
		return err
	}

	n := g.Shape.Size()
	for _, arr := range []struct {
		name string
		v    []float64
	}{
		{"data", g.Data},
		{"x", g.X},
		{"y", g.Y},
		{"z", g.Z},
	} {
		if len(arr.v) != n {
			return fmt.Errorf("%w: %s has %d values, shape %v needs %d",
				ErrShapeMismatch, arr.name, len(arr.v), g.Shape, n)
		}
	}

	return nil
}

// Spacing returns the sample interval along rows (dx, northing) and along
// columns (dy, easting), derived from the area.
func (g *Grid) Spacing() (dx, dy float64) {
	dx = (g.Area.North - g.Area.South) / float64(g.Shape.Rows-1)
	dy = (g.Area.East - g.Area.West) / float64(g.Shape.Cols-1)

	return dx, dy
}

// At returns the value at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.Data[g.Shape.Index(row, col)]
}

// WithData returns a grid sharing g's geometry with new values.
func (g *Grid) WithData(data []float64) (*Grid, error) {
	if len(data) != g.Shape.Size() {
		return nil, fmt.Errorf("%w: data has %d values, shape %v needs %d",
			ErrShapeMismatch, len(data), g.Shape, g.Shape.Size())
	}

	out := *g
	out.Data = data

	return &out, nil
}
