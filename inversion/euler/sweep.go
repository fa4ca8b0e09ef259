package euler

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/cwbudde/algo-euler/field/grid"
	"golang.org/x/sync/errgroup"
)

// Raw is the full-grid accumulation of one sweep. Cells are row-major;
// border cells and singular windows hold unsolved solutions.
type Raw struct {
	Shape      grid.Shape
	WindowSize int
	Cells      []Solution

	// Unsolved counts interior cells whose window was singular.
	Unsolved int
}

// Delta returns the border width.
func (r *Raw) Delta() int {
	return r.WindowSize / 2
}

// Interior returns the interior solutions in row-major order.
func (r *Raw) Interior() []Solution {
	d := r.Delta()
	out := make([]Solution, 0, interiorCount(r.Shape, r.WindowSize))

	for row := d; row < r.Shape.Rows-d; row++ {
		lo := r.Shape.Index(row, d)
		out = append(out, r.Cells[lo:lo+r.Shape.Cols-2*d]...)
	}

	return out
}

// Sweep solves every fully contained window of f for the structural index
// si. Windows are split into anchor-row chunks processed by up to
// opts.Workers goroutines. Singular windows are absorbed and counted.
func Sweep(f *Fields, si float64, size int, opts Options) (*Raw, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil fields", ErrFieldsMismatch)
	}

	if size < 3 || size%2 == 0 || size > f.Shape.Min() {
		return nil, fmt.Errorf("%w: size %d for grid %v", ErrInvalidWindow, size, f.Shape)
	}

	if !(si > 0) || math.IsInf(si, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructuralIndex, si)
	}

	raw := &Raw{
		Shape:      f.Shape,
		WindowSize: size,
		Cells:      make([]Solution, f.Shape.Size()),
	}
	for i := range raw.Cells {
		raw.Cells[i] = unsolvedSolution(math.NaN())
	}

	anchors := f.Shape.Rows - size + 1
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, anchors)

	chunk := (anchors + workers - 1) / workers
	unsolved := make([]int, workers)

	var g errgroup.Group
	g.SetLimit(workers)

	for w := range workers {
		r0 := w * chunk
		r1 := min(r0+chunk, anchors)
		if r0 >= r1 {
			continue
		}

		g.Go(func() error {
			n, err := sweepRows(f, raw.Cells, si, size, r0, r1, opts.MaxCondition)
			unsolved[w] = n
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, n := range unsolved {
		raw.Unsolved += n
	}

	return raw, nil
}

// sweepRows solves the windows anchored on rows [r0, r1) and writes each
// solution to its center cell.
func sweepRows(f *Fields, cells []Solution, si float64, size, r0, r1 int, maxCond float64) (int, error) {
	var (
		smp      Samples
		unsolved int
	)

	solver := NewSolver(maxCond)

	for w := range windowsInRows(f.Shape, size, r0, r1) {
		f.Gather(w, &smp)

		sol, err := solver.Solve(&smp, si)
		if err != nil {
			if !errors.Is(err, ErrSingularSystem) {
				return unsolved, err
			}
			unsolved++
		}

		cells[f.Shape.Index(w.Center())] = sol
	}

	return unsolved, nil
}
