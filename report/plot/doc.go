// Package plot renders Euler estimates and survey grids with gonum/plot.
//
// Colormaps are plain values passed to every renderer through Options.
// Grids are drawn with easting on the horizontal axis and northing on the
// vertical axis.
package plot
