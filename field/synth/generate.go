package synth

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/field/spectral"
)

// ErrNoSources is returned when a model has no sources.
var ErrNoSources = errors.New("synth: model has no sources")

// Model is a set of sources over a regional base level
//
//	b(x, y) = Base + SlopeX·(x - South) + SlopeY·(y - West)
//
// with optional Gaussian noise.
type Model struct {
	Sources []Source
	Base    float64
	SlopeX  float64
	SlopeY  float64

	NoiseStd float64
	Seed     int64
}

// Option configures a Model.
type Option func(*Model)

// WithBase sets a constant base level.
func WithBase(base float64) Option {
	return func(m *Model) {
		m.Base = base
	}
}

// WithRegional adds a planar regional trend to the base level.
func WithRegional(slopeX, slopeY float64) Option {
	return func(m *Model) {
		m.SlopeX = slopeX
		m.SlopeY = slopeY
	}
}

// WithNoise adds zero-mean Gaussian noise with a deterministic seed.
func WithNoise(std float64, seed int64) Option {
	return func(m *Model) {
		if std >= 0 {
			m.NoiseStd = std
			m.Seed = seed
		}
	}
}

// NewModel creates a model from sources and options.
func NewModel(sources []Source, opts ...Option) *Model {
	m := &Model{
		Sources: sources,
		Seed:    1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Render evaluates the model on g's coordinates and returns a grid with
// the same geometry and the synthetic values.
func (m *Model) Render(g *grid.Grid) (*grid.Grid, error) {
	if len(m.Sources) == 0 {
		return nil, ErrNoSources
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	n := g.Shape.Size()
	data := make([]float64, n)
	contrib := make([]float64, n)

	for si, s := range m.Sources {
		if s.Z <= 0 {
			return nil, fmt.Errorf("synth: source %d depth must be > 0: %v", si, s.Z)
		}

		for i := range contrib {
			contrib[i] = s.Field(g.X[i], g.Y[i], g.Z[i])
		}

		floats.Add(data, contrib)
	}

	for i := range data {
		data[i] += m.Base + m.SlopeX*(g.X[i]-g.Area.South) + m.SlopeY*(g.Y[i]-g.Area.West)
	}

	if m.NoiseStd > 0 {
		rng := rand.New(rand.NewSource(m.Seed))
		for i := range contrib {
			contrib[i] = rng.NormFloat64()
		}

		floats.AddScaled(data, m.NoiseStd, contrib)
	}

	return g.WithData(data)
}

// Gradient returns the analytic derivatives of the noise-free model on g's
// coordinates, in the same layout as spectral.Derive.
func (m *Model) Gradient(g *grid.Grid) (spectral.Derivatives, error) {
	if len(m.Sources) == 0 {
		return spectral.Derivatives{}, ErrNoSources
	}

	if err := g.Validate(); err != nil {
		return spectral.Derivatives{}, err
	}

	n := g.Shape.Size()
	d := spectral.Derivatives{
		X: make([]float64, n),
		Y: make([]float64, n),
		Z: make([]float64, n),
	}

	for _, s := range m.Sources {
		for i := range n {
			gx, gy, gz := s.Gradient(g.X[i], g.Y[i], g.Z[i])
			d.X[i] += gx
			d.Y[i] += gy
			d.Z[i] += gz
		}
	}

	if m.SlopeX != 0 || m.SlopeY != 0 {
		floats.AddConst(m.SlopeX, d.X)
		floats.AddConst(m.SlopeY, d.Y)
	}

	return d, nil
}
