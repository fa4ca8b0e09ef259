// Package table reads gridded survey files and writes estimate and
// statistics tables as whitespace separated text.
//
// Grid files hold one "x y z value" row per cell in row-major order.
// Blank lines and lines starting with '#' are ignored.
package table
