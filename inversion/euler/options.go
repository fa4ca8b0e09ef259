package euler

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-euler/field/grid"
)

// Ranking orders interior solutions by their dz dispersion before the
// classic set is truncated.
type Ranking int

const (
	// RankLowDispersion keeps the windows with the lowest dz standard
	// deviation first.
	RankLowDispersion Ranking = iota
	// RankHighDispersion keeps the highest dispersion first. This is the
	// order of the original published scripts.
	RankHighDispersion
)

func (r Ranking) String() string {
	switch r {
	case RankLowDispersion:
		return "low-dispersion"
	case RankHighDispersion:
		return "high-dispersion"
	default:
		return fmt.Sprintf("Ranking(%d)", int(r))
	}
}

// ParseRanking resolves a ranking from its String form.
func ParseRanking(s string) (Ranking, error) {
	switch s {
	case "", "low-dispersion":
		return RankLowDispersion, nil
	case "high-dispersion":
		return RankHighDispersion, nil
	default:
		return 0, fmt.Errorf("euler: unknown ranking %q", s)
	}
}

// Params are the per-run inversion parameters.
type Params struct {
	// StructuralIndex is the homogeneity degree of the assumed source.
	// Fractional values are allowed; use a small positive value such as
	// 0.001 to approximate a contact (SI 0).
	StructuralIndex float64

	// WindowSize is the odd side length of the moving window.
	WindowSize int

	// Filter is the fraction of interior solutions kept in the classic set.
	Filter float64
}

// Delta returns the border width WindowSize/2.
func (p Params) Delta() int {
	return p.WindowSize / 2
}

// Validate checks p against a grid shape. All checks run before any
// computation, including the empty classic set check.
func (p Params) Validate(shape grid.Shape) error {
	if p.WindowSize < 3 || p.WindowSize%2 == 0 || p.WindowSize > shape.Min() {
		return fmt.Errorf("%w: size %d for grid %v", ErrInvalidWindow, p.WindowSize, shape)
	}

	if !(p.StructuralIndex > 0) || math.IsInf(p.StructuralIndex, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidStructuralIndex, p.StructuralIndex)
	}

	if !(p.Filter > 0 && p.Filter <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, p.Filter)
	}

	if n := classicCount(interiorCount(shape, p.WindowSize), p.Filter); n == 0 {
		return fmt.Errorf("%w: filter %v of %d interior windows",
			ErrEmptyFilterResult, p.Filter, interiorCount(shape, p.WindowSize))
	}

	return nil
}

// Options configures a Deconvolver.
type Options struct {
	// Workers bounds the number of goroutines used by the window sweep.
	// Zero or negative means runtime.GOMAXPROCS(0).
	Workers int

	// Ranking selects the classic ordering.
	Ranking Ranking

	// MaxCondition is the largest accepted condition number of the
	// column-equilibrated normal matrix.
	MaxCondition float64
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the default deconvolution options.
func DefaultOptions() Options {
	return Options{
		Workers:      0,
		Ranking:      RankLowDispersion,
		MaxCondition: 1e12,
	}
}

// WithWorkers sets the sweep parallelism.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithRanking sets the classic ordering.
func WithRanking(r Ranking) Option {
	return func(o *Options) {
		o.Ranking = r
	}
}

// WithMaxCondition sets the conditioning threshold for singular windows.
func WithMaxCondition(c float64) Option {
	return func(o *Options) {
		if c > 1 {
			o.MaxCondition = c
		}
	}
}

// ApplyOptions applies zero or more options to the defaults.
func ApplyOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
