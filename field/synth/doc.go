// Package synth evaluates analytic potential-field sources on a grid.
//
// Every source is homogeneous in the offset (x-x0, y-y0, z-z0), so it
// satisfies Euler's equation with a known structural index and is a natural
// fixture for deconvolution tests and demos.
package synth
