package euler

import (
	"testing"

	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/field/spectral"
	"github.com/cwbudde/algo-euler/field/synth"
)

func regularGrid(t testing.TB, rows, cols int, step float64) *grid.Grid {
	t.Helper()

	area := grid.Area{
		South: 0,
		North: step * float64(rows-1),
		West:  0,
		East:  step * float64(cols-1),
	}

	g, err := grid.Regular(grid.Shape{Rows: rows, Cols: cols}, area, 0)
	if err != nil {
		t.Fatalf("grid.Regular error: %v", err)
	}

	return g
}

// pointMassFields renders a point mass with its analytic derivatives.
func pointMassFields(t testing.TB, g *grid.Grid, src synth.Source, base float64) (*grid.Grid, spectral.Derivatives) {
	t.Helper()

	m := synth.NewModel([]synth.Source{src}, synth.WithBase(base))

	rendered, err := m.Render(g)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	d, err := m.Gradient(g)
	if err != nil {
		t.Fatalf("Gradient error: %v", err)
	}

	return rendered, d
}

func constantGrid(t testing.TB, rows, cols int, area grid.Area, value float64) *grid.Grid {
	t.Helper()

	g, err := grid.Regular(grid.Shape{Rows: rows, Cols: cols}, area, 0)
	if err != nil {
		t.Fatalf("grid.Regular error: %v", err)
	}

	for i := range g.Data {
		g.Data[i] = value
	}

	return g
}
