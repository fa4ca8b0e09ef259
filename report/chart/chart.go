// Package chart writes interactive HTML pages of Euler estimates with
// go-echarts.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cwbudde/algo-euler/inversion/euler"
)

// ErrNoSeries is returned when a page would be empty.
var ErrNoSeries = errors.New("chart: no series")

// viridis is the color ramp of the depth scale.
var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// Series is one estimate set to draw, typically one structural index.
type Series struct {
	Name      string
	Estimates []euler.Estimate
}

// Page configures the HTML output.
type Page struct {
	Title string

	// AssetsHost overrides where the echarts scripts are loaded from.
	AssetsHost string
}

// DepthMaps writes one scatter chart per series with estimates placed at
// (easting y0, northing x0) and colored by depth. Unsolved rows are left
// out.
func DepthMaps(w io.Writer, page Page, series []Series) error {
	if len(series) == 0 {
		return ErrNoSeries
	}

	p := components.NewPage()
	if page.AssetsHost != "" {
		p.SetAssetsHost(page.AssetsHost)
	}
	p.PageTitle = page.Title

	for _, s := range series {
		p.AddCharts(depthScatter(page, s))
	}

	if err := p.Render(w); err != nil {
		return fmt.Errorf("chart: render: %w", err)
	}

	return nil
}

func depthScatter(page Page, s Series) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(s.Estimates))
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, e := range s.Estimates {
		if !e.Solved {
			continue
		}

		data = append(data, opts.ScatterData{Value: []interface{}{e.Y, e.X, e.Z}})
		lo = math.Min(lo, e.Z)
		hi = math.Max(hi, e.Z)
	}

	if len(data) == 0 {
		lo, hi = 0, 1
	}

	view := opts.Initialization{Width: "900px", Height: "800px"}
	if page.AssetsHost != "" {
		view.AssetsHost = page.AssetsHost
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(view),
		charts.WithTitleOpts(opts.Title{Title: s.Name, Subtitle: fmt.Sprintf("%d solved estimates", len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "easting (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "northing (m)", NameLocation: "middle", NameGap: 40}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)

	scatter.AddSeries("depth", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))

	return scatter
}
