package euler

import (
	"fmt"

	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/field/spectral"
)

// Result holds the estimate sets of one structural index run.
type Result struct {
	Params Params
	Shape  grid.Shape

	// Classic is ranked by dispersion and truncated by Params.Filter.
	Classic []Estimate

	// Plateau has one row per grid cell, row-major.
	Plateau []Estimate

	// Interior holds every interior window solution, row-major, before
	// ranking. Sigma is only available here.
	Interior []Solution

	// Unsolved counts interior windows with singular normal equations.
	Unsolved int
}

// Solved returns the number of interior windows with a solution.
func (r *Result) Solved() int {
	return len(r.Interior) - r.Unsolved
}

// Delta returns the border width of the run.
func (r *Result) Delta() int {
	return r.Params.Delta()
}

// Deconvolver runs Euler deconvolution on one grid. The derivatives are
// computed once and shared by every Run.
type Deconvolver struct {
	grid   *grid.Grid
	fields *Fields
	opts   Options
}

// NewDeconvolver derives g spectrally and prepares it for deconvolution.
func NewDeconvolver(g *grid.Grid, opts ...Option) (*Deconvolver, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", grid.ErrShapeMismatch)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	d, err := spectral.Derive(g)
	if err != nil {
		return nil, fmt.Errorf("euler: derivatives: %w", err)
	}

	return NewDeconvolverWithDerivatives(g, d, opts...)
}

// NewDeconvolverWithDerivatives uses caller supplied derivatives, for
// example analytic ones or derivatives from another operator.
func NewDeconvolverWithDerivatives(g *grid.Grid, d spectral.Derivatives, opts ...Option) (*Deconvolver, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", grid.ErrShapeMismatch)
	}

	f, err := NewFields(g, d)
	if err != nil {
		return nil, err
	}

	return &Deconvolver{
		grid:   g,
		fields: f,
		opts:   ApplyOptions(opts...),
	}, nil
}

// Grid returns the grid being deconvolved.
func (d *Deconvolver) Grid() *grid.Grid {
	return d.grid
}

// Fields returns the grid paired with its derivatives.
func (d *Deconvolver) Fields() *Fields {
	return d.fields
}

// Options returns the effective options.
func (d *Deconvolver) Options() Options {
	return d.opts
}

// Run deconvolves the grid with the given parameters.
func (d *Deconvolver) Run(p Params) (*Result, error) {
	if err := p.Validate(d.grid.Shape); err != nil {
		return nil, err
	}

	raw, err := Sweep(d.fields, p.StructuralIndex, p.WindowSize, d.opts)
	if err != nil {
		return nil, err
	}

	classic, plateau, err := Assemble(raw, p.Filter, d.opts.Ranking)
	if err != nil {
		return nil, err
	}

	return &Result{
		Params:   p,
		Shape:    d.grid.Shape,
		Classic:  classic,
		Plateau:  plateau,
		Interior: raw.Interior(),
		Unsolved: raw.Unsolved,
	}, nil
}

// Deconvolve is a one-shot NewDeconvolver followed by Run. Parameters are
// validated before the derivatives are computed.
func Deconvolve(g *grid.Grid, p Params, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", grid.ErrShapeMismatch)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	if err := p.Validate(g.Shape); err != nil {
		return nil, err
	}

	d, err := NewDeconvolver(g, opts...)
	if err != nil {
		return nil, err
	}

	return d.Run(p)
}
