// Package region summarises Euler estimates inside a rectangular box.
//
// A point belongs to a box when South < x < North and West < y < East,
// with x the northing and y the easting. Standard deviations are
// population values (divisor n).
package region
