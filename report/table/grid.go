package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-euler/field/grid"
)

// ErrMalformedRow is returned for rows that are not four numbers.
var ErrMalformedRow = errors.New("table: malformed row")

// ReadGrid parses "x y z value" rows and wraps them in a grid of the given
// shape and area.
func ReadGrid(r io.Reader, shape grid.Shape, area grid.Area) (*grid.Grid, error) {
	n := shape.Size()
	x := make([]float64, 0, n)
	y := make([]float64, 0, n)
	z := make([]float64, 0, n)
	data := make([]float64, 0, n)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: line %d has %d columns, want 4", ErrMalformedRow, line, len(fields))
		}

		var row [4]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %v", ErrMalformedRow, line, i+1, err)
			}
			row[i] = v
		}

		x = append(x, row[0])
		y = append(y, row[1])
		z = append(z, row[2])
		data = append(data, row[3])
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("table: read grid: %w", err)
	}

	return grid.New(data, x, y, z, shape, area)
}

// ReadGridFile opens path and calls ReadGrid.
func ReadGridFile(path string, shape grid.Shape, area grid.Area) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := ReadGrid(f, shape, area)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// WriteGrid writes g as "x y z value" rows with a comment header.
// Values are written with the shortest representation that reads back
// exactly.
func WriteGrid(w io.Writer, g *grid.Grid) error {
	if err := g.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# shape %d %d\n", g.Shape.Rows, g.Shape.Cols)
	fmt.Fprintf(bw, "# area %s\n", joinFloats(g.Area.Slice()))
	fmt.Fprintln(bw, "# x y z value")

	for i := range g.Data {
		fmt.Fprintln(bw, joinFloats([]float64{g.X[i], g.Y[i], g.Z[i], g.Data[i]}))
	}

	return bw.Flush()
}

// WriteGridFile creates path and calls WriteGrid.
func WriteGridFile(path string, g *grid.Grid) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteGrid(w, g)
	})
}

func joinFloats(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}

	return strings.Join(parts, " ")
}
