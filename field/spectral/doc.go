// Package spectral computes spatial derivatives of gridded potential fields
// in the wavenumber domain.
//
// A grid is padded by edge replication to the next power-of-two square,
// transformed with a 2-D DFT, multiplied by the derivative operators
//
//	d/dx: i·u    d/dy: i·v    d/dz: sqrt(u² + v²)
//
// and transformed back. The vertical operator is the radial wavenumber,
// which holds for fields that are harmonic above their sources.
package spectral
