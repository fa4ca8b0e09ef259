package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/inversion/euler"
)

// ErrNoData is returned when nothing can be drawn.
var ErrNoData = errors.New("plot: nothing to draw")

// Field selects the estimate column to color by.
type Field int

// Estimate columns.
const (
	FieldX Field = iota
	FieldY
	FieldZ
	FieldBase
)

func (f Field) String() string {
	switch f {
	case FieldX:
		return "x"
	case FieldY:
		return "y"
	case FieldZ:
		return "z"
	case FieldBase:
		return "b"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Label returns an axis or title label for f.
func (f Field) Label() string {
	switch f {
	case FieldX:
		return "northing x0 (m)"
	case FieldY:
		return "easting y0 (m)"
	case FieldZ:
		return "depth z0 (m)"
	case FieldBase:
		return "base level b"
	default:
		return f.String()
	}
}

func (f Field) of(e euler.Estimate) float64 {
	if !e.Solved || f < FieldX || f > FieldBase {
		return math.NaN()
	}

	return e.Row()[f]
}

// Options controls figure appearance.
type Options struct {
	Title    string
	Width    vg.Length
	Height   vg.Length
	Colormap Colormap

	// NaNColor fills cells without a value.
	NaNColor color.Color

	// GlyphRadius sizes classic estimate markers.
	GlyphRadius vg.Length
}

// DefaultOptions returns 6×6 inch figures with the default colormap.
func DefaultOptions() Options {
	return Options{
		Width:       6 * vg.Inch,
		Height:      6 * vg.Inch,
		Colormap:    DefaultColormap(),
		NaNColor:    color.Transparent,
		GlyphRadius: vg.Points(2),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if len(o.Colormap.Colors()) == 0 {
		o.Colormap = d.Colormap
	}
	if o.NaNColor == nil {
		o.NaNColor = d.NaNColor
	}
	if o.GlyphRadius <= 0 {
		o.GlyphRadius = d.GlyphRadius
	}

	return o
}

// cells adapts row-major grid values to plotter.GridXYZ.
type cells struct {
	shape  grid.Shape
	values []float64
	x      []float64 // easting per column
	y      []float64 // northing per row
}

func newCells(g *grid.Grid, values []float64) *cells {
	c := &cells{
		shape:  g.Shape,
		values: values,
		x:      make([]float64, g.Shape.Cols),
		y:      make([]float64, g.Shape.Rows),
	}

	for col := range g.Shape.Cols {
		c.x[col] = g.Y[g.Shape.Index(0, col)]
	}
	for row := range g.Shape.Rows {
		c.y[row] = g.X[g.Shape.Index(row, 0)]
	}

	return c
}

func (c *cells) Dims() (cols, rows int) { return c.shape.Cols, c.shape.Rows }
func (c *cells) Z(col, row int) float64 { return c.values[c.shape.Index(row, col)] }
func (c *cells) X(col int) float64      { return c.x[col] }
func (c *cells) Y(row int) float64      { return c.y[row] }

// finiteRange returns the min and max of the finite values, widened when
// they coincide.
func finiteRange(values []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if lo > hi {
		return 0, 1, false
	}

	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	return lo, hi, true
}

func newPlot(title, xLabel, yLabel string) *gplot.Plot {
	p := gplot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	return p
}

func heatMap(g *grid.Grid, values []float64, cm Colormap, nan color.Color) (*plotter.HeatMap, error) {
	lo, hi, ok := finiteRange(values)
	if !ok {
		return nil, fmt.Errorf("%w: no finite values", ErrNoData)
	}

	hm := plotter.NewHeatMap(newCells(g, values), cm)
	hm.Min, hm.Max = lo, hi
	hm.NaN = nan

	return hm, nil
}

// Data draws the survey grid.
func Data(g *grid.Grid, opts Options) (*gplot.Plot, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	opts = opts.withDefaults()

	hm, err := heatMap(g, g.Data, opts.Colormap, opts.NaNColor)
	if err != nil {
		return nil, err
	}

	p := newPlot(opts.Title, "easting (m)", "northing (m)")
	p.Add(hm)

	return p, nil
}

// Plateau draws one column of a plateau estimate set as a heat map over
// the grid. Unsolved cells take the NaN color.
func Plateau(plateau []euler.Estimate, g *grid.Grid, field Field, opts Options) (*gplot.Plot, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	if len(plateau) != g.Shape.Size() {
		return nil, fmt.Errorf("%w: %d plateau rows, grid %v", grid.ErrShapeMismatch, len(plateau), g.Shape)
	}

	opts = opts.withDefaults()

	values := make([]float64, len(plateau))
	for i, e := range plateau {
		values[i] = field.of(e)
	}

	hm, err := heatMap(g, values, opts.Colormap, opts.NaNColor)
	if err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = "plateau " + field.Label()
	}

	p := newPlot(title, "easting (m)", "northing (m)")
	p.Add(hm)

	return p, nil
}

// Classic draws classic estimates at their estimated (y0, x0) over a gray
// rendering of the survey grid. Markers are colored by field.
func Classic(classic []euler.Estimate, g *grid.Grid, field Field, opts Options) (*gplot.Plot, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	opts = opts.withDefaults()

	xys := make(plotter.XYs, 0, len(classic))
	values := make([]float64, 0, len(classic))

	for _, e := range classic {
		if !e.Solved {
			continue
		}

		xys = append(xys, plotter.XY{X: e.Y, Y: e.X})
		values = append(values, field.of(e))
	}

	if len(xys) == 0 {
		return nil, fmt.Errorf("%w: no solved classic estimates", ErrNoData)
	}

	title := opts.Title
	if title == "" {
		title = "classic " + field.Label()
	}

	p := newPlot(title, "easting (m)", "northing (m)")

	if bg, err := heatMap(g, g.Data, Grayscale(64), opts.NaNColor); err == nil {
		p.Add(bg)
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("plot: classic scatter: %w", err)
	}

	lo, hi, _ := finiteRange(values)
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  opts.Colormap.At((values[i] - lo) / (hi - lo)),
			Radius: opts.GlyphRadius,
			Shape:  draw.CircleGlyph{},
		}
	}

	p.Add(sc)

	return p, nil
}

// Write encodes p in the given format ("png", "svg", "pdf", ...).
func Write(w io.Writer, p *gplot.Plot, opts Options, format string) error {
	opts = opts.withDefaults()

	wt, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}

	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("plot: write %s: %w", format, err)
	}

	return nil
}

// Save writes p to path; the format follows the file extension.
func Save(p *gplot.Plot, opts Options, path string) error {
	opts = opts.withDefaults()

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("plot: save %s: %w", path, err)
	}

	return nil
}
