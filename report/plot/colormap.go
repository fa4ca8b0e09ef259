package plot

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// ErrInvalidColormap is returned for empty or malformed lookup tables.
var ErrInvalidColormap = errors.New("plot: invalid colormap")

// Colormap is an ordered list of colors from low to high values. It
// implements palette.Palette.
type Colormap struct {
	name   string
	colors []color.Color
}

var _ palette.Palette = Colormap{}

// NewColormap copies colors into a named colormap.
func NewColormap(name string, colors []color.Color) (Colormap, error) {
	if len(colors) < 2 {
		return Colormap{}, fmt.Errorf("%w: %q needs at least 2 colors, got %d", ErrInvalidColormap, name, len(colors))
	}

	return Colormap{name: name, colors: append([]color.Color(nil), colors...)}, nil
}

// DefaultColormap returns a 256 step extended black body map.
func DefaultColormap() Colormap {
	cm := moreland.ExtendedBlackBody()
	cm.SetMin(0)
	cm.SetMax(1)

	return Colormap{name: "blackbody", colors: cm.Palette(256).Colors()}
}

// Grayscale returns an n step black to white map.
func Grayscale(n int) Colormap {
	n = max(n, 2)
	colors := make([]color.Color, n)
	for i := range colors {
		v := uint8(math.Round(float64(i) * 255 / float64(n-1)))
		colors[i] = color.Gray{Y: v}
	}

	return Colormap{name: "gray", colors: colors}
}

// Name returns the colormap name.
func (c Colormap) Name() string {
	return c.name
}

// Colors returns the colors from low to high.
func (c Colormap) Colors() []color.Color {
	return c.colors
}

// At returns the color for t in [0, 1]. Values outside are clamped and NaN
// maps to the lowest color.
func (c Colormap) At(t float64) color.Color {
	if len(c.colors) == 0 {
		return color.Black
	}

	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	return c.colors[int(math.Round(t*float64(len(c.colors)-1)))]
}

// ReadLUT reads a colormap from rows of three numbers (red, green, blue).
// Components in [0, 1] are scaled to 8 bits; a table with any component
// above 1 is read as 0..255. Blank lines and '#' comments are skipped.
func ReadLUT(r io.Reader, name string) (Colormap, error) {
	var rows [][3]float64

	sc := bufio.NewScanner(r)
	line := 0
	scale := 255.0

	for sc.Scan() {
		line++

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 3 {
			return Colormap{}, fmt.Errorf("%w: line %d has %d columns, want 3", ErrInvalidColormap, line, len(fields))
		}

		var rgb [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil || v < 0 || v > 255 {
				return Colormap{}, fmt.Errorf("%w: line %d column %d: %q", ErrInvalidColormap, line, i+1, f)
			}
			if v > 1 {
				scale = 1
			}
			rgb[i] = v
		}

		rows = append(rows, rgb)
	}

	if err := sc.Err(); err != nil {
		return Colormap{}, fmt.Errorf("plot: read lut: %w", err)
	}

	colors := make([]color.Color, len(rows))
	for i, rgb := range rows {
		colors[i] = color.RGBA{
			R: uint8(math.Round(rgb[0] * scale)),
			G: uint8(math.Round(rgb[1] * scale)),
			B: uint8(math.Round(rgb[2] * scale)),
			A: 255,
		}
	}

	return NewColormap(name, colors)
}

// ReadLUTFile opens path and calls ReadLUT with the file name as name.
func ReadLUTFile(path string) (Colormap, error) {
	f, err := os.Open(path)
	if err != nil {
		return Colormap{}, err
	}
	defer f.Close()

	return ReadLUT(f, path)
}
