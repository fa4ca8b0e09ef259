package spectral

import "math"

// FFTFreq returns the sample frequencies of an n-point DFT with sample
// spacing d, in standard FFT order: [0, 1, ..., ceil(n/2)-1, -floor(n/2), ..., -1] / (d*n).
func FFTFreq(n int, d float64) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	scale := 1 / (d * float64(n))
	pos := (n-1)/2 + 1

	for i := range pos {
		out[i] = float64(i) * scale
	}

	for i := pos; i < n; i++ {
		out[i] = float64(i-n) * scale
	}

	return out
}

// Wavenumbers returns the angular wavenumber grids of an N×N spectrum,
// row-major. u varies along rows with spacing dx, v along columns with
// spacing dy.
func Wavenumbers(n int, dx, dy float64) (u, v []float64) {
	ku := FFTFreq(n, dx)
	kv := FFTFreq(n, dy)

	u = make([]float64, n*n)
	v = make([]float64, n*n)

	for r := range n {
		for c := range n {
			u[r*n+c] = 2 * math.Pi * ku[r]
			v[r*n+c] = 2 * math.Pi * kv[c]
		}
	}

	return u, v
}
