package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-euler/field/core"
	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/inversion/euler"
	"github.com/cwbudde/algo-euler/report/table"
)

func (a *app) newInfoCmd() *cobra.Command {
	var (
		path       string
		rows, cols int
		area       []float64
		windows    []int
		filter     float64
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe a grid and the window sizes it supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ar, err := grid.AreaFromSlice(area)
			if err != nil {
				return err
			}

			g, err := table.ReadGridFile(path, grid.Shape{Rows: rows, Cols: cols}, ar)
			if err != nil {
				return err
			}

			dx, dy := g.Spacing()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			fmt.Fprintf(w, "shape\t%v\n", g.Shape)
			fmt.Fprintf(w, "spacing\t%.3f x %.3f\n", dx, dy)
			fmt.Fprintf(w, "fft size\t%d\n", core.NextPowerOfTwo(g.Shape.Max()))
			fmt.Fprintf(w, "values\t%.6g .. %.6g (mean %.6g)\n",
				floats.Min(g.Data), floats.Max(g.Data), floats.Sum(g.Data)/float64(len(g.Data)))
			fmt.Fprintln(w)
			fmt.Fprintln(w, "window\tdelta\tinterior\tclassic\tstatus")

			for _, size := range windows {
				p := euler.Params{StructuralIndex: 1, WindowSize: size, Filter: filter}

				interior := 0
				if d := size / 2; size > 0 {
					interior = max(g.Shape.Rows-2*d, 0) * max(g.Shape.Cols-2*d, 0)
				}

				status := "ok"
				if err := p.Validate(g.Shape); err != nil {
					status = err.Error()
				}

				classic := int(math.Floor(float64(interior) * filter))
				fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\n", size, p.Delta(), interior, classic, status)
			}

			return w.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVarP(&path, "grid", "g", "grid.dat", "Grid file with x y z value rows")
	f.IntVar(&rows, "rows", 120, "Grid rows")
	f.IntVar(&cols, "cols", 140, "Grid columns")
	f.Float64SliceVar(&area, "area", []float64{0, 24000, 0, 28000}, "Area as south,north,west,east")
	f.IntSliceVar(&windows, "window", []int{5, 7, 9, 11}, "Window sizes to check")
	f.Float64Var(&filter, "filter", 0.08, "Classic filter fraction")

	return cmd
}
