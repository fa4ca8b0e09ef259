package survey

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gplot "gonum.org/v1/plot"

	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/inversion/euler"
	"github.com/cwbudde/algo-euler/report/chart"
	"github.com/cwbudde/algo-euler/report/plot"
	"github.com/cwbudde/algo-euler/report/store"
	"github.com/cwbudde/algo-euler/report/table"
	"github.com/cwbudde/algo-euler/stats/region"
)

// IndexResult is the outcome for one structural index.
type IndexResult struct {
	StructuralIndex float64
	Result          *euler.Result
	RunID           string // empty without a database
}

// Summary collects every index of a survey run.
type Summary struct {
	Indices []IndexResult

	// ClassicStats and PlateauStats map a region name to one Stats per
	// structural index, in index order.
	ClassicStats map[string][]region.Stats
	PlateauStats map[string][]region.Stats

	Files []string
}

// Runner executes a Config.
type Runner struct {
	cfg *Config
	log *zap.Logger
}

// NewRunner validates cfg and returns a Runner. A nil logger disables
// logging.
func NewRunner(cfg *Config, log *zap.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Runner{cfg: cfg, log: log.Named("survey")}, nil
}

// Run loads the grid, deconvolves it for every structural index and
// writes the configured outputs.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	g, err := r.loadGrid()
	if err != nil {
		return nil, err
	}

	opts, err := r.cfg.Options()
	if err != nil {
		return nil, err
	}

	dec, err := euler.NewDeconvolver(g, opts...)
	if err != nil {
		return nil, fmt.Errorf("survey: derivatives: %w", err)
	}

	r.log.Debug("derivatives ready", zap.Duration("elapsed", time.Since(start)))

	results, err := r.deconvolve(ctx, dec)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Indices: results}

	if err := r.summarize(g, sum); err != nil {
		return nil, err
	}

	if err := r.writeTables(sum); err != nil {
		return nil, err
	}

	if r.cfg.Output.Plots {
		if err := r.writePlots(g, sum); err != nil {
			return nil, err
		}
	}

	if r.cfg.Output.HTML {
		if err := r.writeHTML(sum); err != nil {
			return nil, err
		}
	}

	if r.cfg.Output.Database != "" {
		if err := r.persist(ctx, dec.Options().Ranking, sum); err != nil {
			return nil, err
		}
	}

	r.log.Info("survey finished",
		zap.String("name", r.cfg.Name),
		zap.Int("indices", len(results)),
		zap.Int("files", len(sum.Files)),
		zap.Duration("elapsed", time.Since(start)))

	return sum, nil
}

func (r *Runner) loadGrid() (*grid.Grid, error) {
	area, err := r.cfg.Area()
	if err != nil {
		return nil, err
	}

	g, err := table.ReadGridFile(r.cfg.Grid.Path, r.cfg.Shape(), area)
	if err != nil {
		return nil, fmt.Errorf("survey: load grid: %w", err)
	}

	r.log.Info("grid loaded",
		zap.String("path", r.cfg.Grid.Path),
		zap.Stringer("shape", g.Shape),
		zap.Float64s("area", g.Area.Slice()))

	return g, nil
}

// deconvolve runs every structural index. The derivatives are shared and
// each Run is independent.
func (r *Runner) deconvolve(ctx context.Context, dec *euler.Deconvolver) ([]IndexResult, error) {
	indices := r.cfg.Euler.StructuralIndices
	out := make([]IndexResult, len(indices))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(2)

	for i, si := range indices {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			t0 := time.Now()

			res, err := dec.Run(r.cfg.Params(si))
			if err != nil {
				return fmt.Errorf("survey: SI %g: %w", si, err)
			}

			out[i] = IndexResult{StructuralIndex: si, Result: res}

			fields := []zap.Field{
				zap.Float64("si", si),
				zap.Int("solved", res.Solved()),
				zap.Int("unsolved", res.Unsolved),
				zap.Int("classic", len(res.Classic)),
				zap.Duration("elapsed", time.Since(t0)),
			}
			if res.Solved() == 0 {
				r.log.Warn("no window was solved", fields...)
			} else {
				r.log.Info("deconvolution done", fields...)
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Runner) summarize(g *grid.Grid, sum *Summary) error {
	sum.ClassicStats = make(map[string][]region.Stats, len(r.cfg.Regions.Classic))
	sum.PlateauStats = make(map[string][]region.Stats, len(r.cfg.Regions.Plateau))

	for _, reg := range r.cfg.Regions.Classic {
		box, err := region.BoxFromSlice(reg.Box)
		if err != nil {
			return err
		}

		for _, ir := range sum.Indices {
			s, err := region.Classic(ir.Result.Classic, box)
			if err != nil {
				return err
			}
			sum.ClassicStats[reg.Name] = append(sum.ClassicStats[reg.Name], s)
		}
	}

	for _, reg := range r.cfg.Regions.Plateau {
		box, err := region.BoxFromSlice(reg.Box)
		if err != nil {
			return err
		}

		for _, ir := range sum.Indices {
			s, err := region.Plateau(ir.Result.Plateau, g.X, g.Y, box)
			if err != nil {
				return err
			}
			sum.PlateauStats[reg.Name] = append(sum.PlateauStats[reg.Name], s)
		}
	}

	return nil
}

func siTag(si float64) string {
	return "si" + strconv.FormatFloat(si, 'g', -1, 64)
}

func (r *Runner) outputPath(name string) string {
	return filepath.Join(r.cfg.Output.Dir, name)
}

func (r *Runner) writeTables(sum *Summary) error {
	if err := os.MkdirAll(r.cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("survey: output dir: %w", err)
	}

	for _, ir := range sum.Indices {
		for _, set := range []struct {
			name string
			rows []euler.Estimate
		}{
			{"classic_" + siTag(ir.StructuralIndex) + ".txt", ir.Result.Classic},
			{"plateau_" + siTag(ir.StructuralIndex) + ".txt", ir.Result.Plateau},
		} {
			path := r.outputPath(set.name)
			if err := table.WriteEstimatesFile(path, set.rows); err != nil {
				return fmt.Errorf("survey: %w", err)
			}
			sum.Files = append(sum.Files, path)
		}
	}

	for _, set := range []struct {
		regions []Region
		stats   map[string][]region.Stats
	}{
		{r.cfg.Regions.Classic, sum.ClassicStats},
		{r.cfg.Regions.Plateau, sum.PlateauStats},
	} {
		for _, reg := range set.regions {
			path := r.outputPath(reg.Name + ".txt")
			if err := table.WriteStatsFile(path, set.stats[reg.Name]); err != nil {
				return fmt.Errorf("survey: %w", err)
			}
			sum.Files = append(sum.Files, path)
		}
	}

	r.log.Debug("tables written", zap.Int("files", len(sum.Files)))

	return nil
}

func (r *Runner) writePlots(g *grid.Grid, sum *Summary) error {
	opts := plot.DefaultOptions()

	if r.cfg.Output.Colormap != "" {
		cm, err := plot.ReadLUTFile(r.cfg.Output.Colormap)
		if err != nil {
			return fmt.Errorf("survey: colormap: %w", err)
		}
		opts.Colormap = cm
	}

	format := r.cfg.Output.PlotFormat
	save := func(name string, render func() (*gplot.Plot, error)) error {
		p, err := render()
		if err != nil {
			r.log.Warn("figure skipped", zap.String("figure", name), zap.Error(err))
			return nil
		}

		path := r.outputPath(name + "." + format)
		if err := plot.Save(p, opts, path); err != nil {
			return fmt.Errorf("survey: %w", err)
		}

		sum.Files = append(sum.Files, path)

		return nil
	}

	if err := save("data", func() (*gplot.Plot, error) { return plot.Data(g, opts) }); err != nil {
		return err
	}

	for _, ir := range sum.Indices {
		tag := siTag(ir.StructuralIndex)

		for _, f := range []plot.Field{plot.FieldZ, plot.FieldBase} {
			name := "classic_" + f.String() + "_" + tag
			if err := save(name, func() (*gplot.Plot, error) {
				return plot.Classic(ir.Result.Classic, g, f, opts)
			}); err != nil {
				return err
			}
		}

		for _, f := range []plot.Field{plot.FieldX, plot.FieldY, plot.FieldZ, plot.FieldBase} {
			name := "plateau_" + f.String() + "_" + tag
			if err := save(name, func() (*gplot.Plot, error) {
				return plot.Plateau(ir.Result.Plateau, g, f, opts)
			}); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Runner) writeHTML(sum *Summary) error {
	series := make([]chart.Series, 0, len(sum.Indices))
	for _, ir := range sum.Indices {
		series = append(series, chart.Series{
			Name:      fmt.Sprintf("%s classic SI %g", r.cfg.Name, ir.StructuralIndex),
			Estimates: ir.Result.Classic,
		})
	}

	path := r.outputPath("estimates.html")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("survey: %w", err)
	}

	if err := chart.DepthMaps(f, chart.Page{Title: r.cfg.Name}, series); err != nil {
		f.Close()
		return fmt.Errorf("survey: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("survey: %w", err)
	}

	sum.Files = append(sum.Files, path)

	return nil
}

func (r *Runner) persist(ctx context.Context, rank euler.Ranking, sum *Summary) error {
	if dir := filepath.Dir(r.cfg.Output.Database); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("survey: database dir: %w", err)
		}
	}

	db, err := store.Open(ctx, r.cfg.Output.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	for i := range sum.Indices {
		ir := &sum.Indices[i]

		run, err := db.SaveRun(ctx, r.cfg.Name, rank, ir.Result)
		if err != nil {
			return err
		}

		ir.RunID = run.ID.String()
		r.log.Debug("run stored", zap.Float64("si", ir.StructuralIndex), zap.String("run", ir.RunID))
	}

	return nil
}
