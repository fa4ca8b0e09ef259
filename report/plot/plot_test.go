package plot

import (
	"bytes"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/inversion/euler"
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()

	g, err := grid.Regular(grid.Shape{Rows: 6, Cols: 8}, grid.Area{South: 0, North: 500, West: 1000, East: 1700}, 0)
	require.NoError(t, err)

	for i := range g.Data {
		g.Data[i] = math.Sin(float64(i) / 5)
	}

	return g
}

func plateauOf(g *grid.Grid) []euler.Estimate {
	out := make([]euler.Estimate, g.Shape.Size())
	for i := range out {
		out[i] = euler.Estimate{X: g.X[i], Y: g.Y[i], Z: 100 + float64(i), Base: 1, Solved: i%7 != 0}
		if !out[i].Solved {
			nan := math.NaN()
			out[i] = euler.Estimate{X: nan, Y: nan, Z: nan, Base: nan}
		}
	}
	return out
}

func TestColormapAt(t *testing.T) {
	cm, err := NewColormap("bw", []color.Color{color.Black, color.White})
	require.NoError(t, err)

	assert.Equal(t, color.Black, cm.At(0))
	assert.Equal(t, color.White, cm.At(1))
	assert.Equal(t, color.White, cm.At(7))
	assert.Equal(t, color.Black, cm.At(math.NaN()))
	assert.Equal(t, "bw", cm.Name())

	_, err = NewColormap("one", []color.Color{color.Black})
	require.ErrorIs(t, err, ErrInvalidColormap)

	assert.Len(t, DefaultColormap().Colors(), 256)
	assert.Equal(t, color.Gray{Y: 255}, Grayscale(4).Colors()[3])
}

func TestReadLUT(t *testing.T) {
	unit, err := ReadLUT(strings.NewReader("# r g b\n0 0 0\n1 0.5 0\n"), "unit")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 0, A: 255}, unit.Colors()[1])

	bytes8, err := ReadLUT(strings.NewReader("0 0 0\n255 128 1\n"), "8bit")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 1, A: 255}, bytes8.Colors()[1])

	_, err = ReadLUT(strings.NewReader("0 0\n1 1 1\n"), "bad")
	require.ErrorIs(t, err, ErrInvalidColormap)

	_, err = ReadLUT(strings.NewReader("0 0 300\n1 1 1\n"), "bad")
	require.ErrorIs(t, err, ErrInvalidColormap)

	path := filepath.Join(t.TempDir(), "lut.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 0 0\n0 0 1\n1 1 1\n"), 0o600))

	fromFile, err := ReadLUTFile(path)
	require.NoError(t, err)
	assert.Len(t, fromFile.Colors(), 3)
}

func TestCellsLayout(t *testing.T) {
	g := testGrid(t)
	c := newCells(g, g.Data)

	cols, rows := c.Dims()
	assert.Equal(t, 8, cols)
	assert.Equal(t, 6, rows)
	assert.Equal(t, 1000.0, c.X(0))
	assert.Equal(t, 1700.0, c.X(7))
	assert.Equal(t, 500.0, c.Y(5))
	assert.Equal(t, g.At(2, 3), c.Z(3, 2))
}

func TestRenderPNG(t *testing.T) {
	g := testGrid(t)
	plateau := plateauOf(g)

	for _, field := range []Field{FieldX, FieldY, FieldZ, FieldBase} {
		p, err := Plateau(plateau, g, field, Options{})
		require.NoError(t, err, field.String())

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, p, Options{}, "png"))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "png signature")
	}

	p, err := Classic(plateau, g, FieldZ, Options{Title: "depth"})
	require.NoError(t, err)
	assert.Equal(t, "depth", p.Title.Text)

	d, err := Data(g, Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "data.svg")
	require.NoError(t, Save(d, Options{}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderNothingToDraw(t *testing.T) {
	g := testGrid(t)

	unsolved := make([]euler.Estimate, g.Shape.Size())
	for i := range unsolved {
		nan := math.NaN()
		unsolved[i] = euler.Estimate{X: nan, Y: nan, Z: nan, Base: nan}
	}

	_, err := Plateau(unsolved, g, FieldZ, Options{})
	require.ErrorIs(t, err, ErrNoData)

	_, err = Classic(unsolved, g, FieldZ, Options{})
	require.ErrorIs(t, err, ErrNoData)

	_, err = Plateau(unsolved[:3], g, FieldZ, Options{})
	require.ErrorIs(t, err, grid.ErrShapeMismatch)
}

func TestConstantGridStillRenders(t *testing.T) {
	g := testGrid(t)
	for i := range g.Data {
		g.Data[i] = 100
	}

	p, err := Data(g, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p, Options{Width: 200, Height: 200}, "svg"))
	assert.Contains(t, buf.String(), "<svg")
}
