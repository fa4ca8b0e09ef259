// Package euler estimates anomaly source positions from gridded potential
// fields with moving-window Euler deconvolution.
//
// For every fully contained w×w window the solver fits Euler's homogeneity
// equation
//
//	dx·x0 + dy·y0 + dz·z0 + SI·b = dx·x + dy·y + dz·z + SI·f
//
// in the least-squares sense, where (dx, dy, dz) are the field derivatives,
// SI is the structural index supplied by the caller and (x0, y0, z0, b) are
// the source position, depth and base level. The solution is attributed to
// the window's center cell.
//
// Two estimate sets are built from the per-window solutions:
//
//   - Plateau: one estimate per grid cell. Border cells without a full
//     window take the value of the nearest interior cell.
//   - Classic: interior solutions ranked by the standard deviation of dz
//     inside their window and truncated to a fraction of the total.
//
// Windows whose normal equations are singular are kept as explicit
// unsolved entries and counted in Result.Unsolved.
package euler
