package spectral

import (
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-euler/field/grid"
)

// Derivatives holds the first derivatives of a grid along x (northing),
// y (easting) and z (down), each in the grid's row-major layout.
type Derivatives struct {
	X []float64
	Y []float64
	Z []float64
}

// Derive computes the x, y and z derivatives of g in the wavenumber domain.
//
// The grid mean is removed before the forward transform. All three
// operators vanish at the DC bin, so this does not change the result, but
// a constant grid then yields exact zeros instead of round-off.
func Derive(g *grid.Grid) (Derivatives, error) {
	if err := g.Validate(); err != nil {
		return Derivatives{}, err
	}

	centered := make([]float64, len(g.Data))
	copy(centered, g.Data)
	floats.AddConst(-floats.Sum(centered)/float64(len(centered)), centered)

	p, err := Pad(centered, g.Shape)
	if err != nil {
		return Derivatives{}, err
	}

	n := p.N

	tr, err := NewTransform2D(n)
	if err != nil {
		return Derivatives{}, err
	}

	spec := make([]complex128, n*n)
	for i, v := range p.Data {
		spec[i] = complex(v, 0)
	}

	if err := tr.Forward(spec, spec); err != nil {
		return Derivatives{}, err
	}

	dx, dy := g.Spacing()
	u, v := Wavenumbers(n, dx, dy)

	k := make([]float64, n*n)
	vecmath.Magnitude(k, u, v)

	re := make([]float64, n*n)
	im := make([]float64, n*n)

	for i, c := range spec {
		re[i] = real(c)
		im[i] = imag(c)
	}

	op := operator{tr: tr, pad: p, re: re, im: im}

	var out Derivatives

	// F·(i·u) = -im·u + i·re·u
	if out.X, err = op.apply(u, true); err != nil {
		return Derivatives{}, err
	}

	if out.Y, err = op.apply(v, true); err != nil {
		return Derivatives{}, err
	}

	if out.Z, err = op.apply(k, false); err != nil {
		return Derivatives{}, err
	}

	return out, nil
}

// operator multiplies a spectrum by a real wavenumber grid, optionally
// times i, and returns the un-padded real part of the inverse transform.
type operator struct {
	tr  *Transform2D
	pad *Padded
	re  []float64
	im  []float64
}

func (o operator) apply(w []float64, imaginary bool) ([]float64, error) {
	n := len(w)
	pr := make([]float64, n)
	pi := make([]float64, n)

	vecmath.MulBlock(pr, o.re, w)
	vecmath.MulBlock(pi, o.im, w)

	buf := make([]complex128, n)
	for i := range buf {
		if imaginary {
			buf[i] = complex(-pi[i], pr[i])
		} else {
			buf[i] = complex(pr[i], pi[i])
		}
	}

	if err := o.tr.Inverse(buf, buf); err != nil {
		return nil, err
	}

	// reuse pr for the real part
	for i, c := range buf {
		pr[i] = real(c)
	}

	return o.pad.Unpad(pr)
}
