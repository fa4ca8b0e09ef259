package table

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-euler/inversion/euler"
	"github.com/cwbudde/algo-euler/stats/region"
)

// StatsHeader is the header line of statistics tables.
const StatsHeader = "mean z,std z,mean b, std b"

// WriteEstimates writes one "x y z b" row per estimate with three decimals.
// Unsolved rows are written as nan.
func WriteEstimates(w io.Writer, est []euler.Estimate) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# x y z b")
	for _, e := range est {
		fmt.Fprintln(bw, formatRow(e.Row()))
	}

	return bw.Flush()
}

// WriteEstimatesFile creates path and calls WriteEstimates.
func WriteEstimatesFile(path string, est []euler.Estimate) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteEstimates(w, est)
	})
}

// WriteStats writes one row per statistics entry, typically one per
// structural index: mean and std of the depth in km followed by mean and
// std of the base level.
func WriteStats(w io.Writer, stats []region.Stats) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, StatsHeader)
	for _, s := range stats {
		row := [4]float64{s.Z.Mean / 1000, s.Z.Std / 1000, s.Base.Mean, s.Base.Std}
		fmt.Fprintln(bw, formatRow(row))
	}

	return bw.Flush()
}

// WriteStatsFile creates path and calls WriteStats.
func WriteStatsFile(path string, stats []region.Stats) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteStats(w, stats)
	})
}

func formatRow(row [4]float64) string {
	out := make([]byte, 0, 64)
	for i, v := range row {
		if i > 0 {
			out = append(out, ' ')
		}

		if math.IsNaN(v) {
			out = append(out, "nan"...)
			continue
		}

		out = fmt.Appendf(out, "%.3f", v)
	}

	return string(out)
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return fn(f)
}
