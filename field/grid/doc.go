// Package grid describes regularly sampled 2-D potential-field grids.
//
// A Grid stores its values and coordinates as flat row-major slices.
// Following the usual survey convention X is northing and grows along rows
// (south to north), Y is easting and grows along columns (west to east), and
// Z is positive down.
package grid
