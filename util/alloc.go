// Package util holds allocation, comparison and report helpers shared by
// the integrators and the command line tool.
package util

// MakeSquare returns an n×n matrix, see MakeRectangular.
func MakeSquare(n uint) [][]float64 {
	return MakeRectangular(n, n)
}

// MakeRectangular returns a zeroed rows×cols matrix whose rows share one
// backing array. Rows are capped at cols so appending to one row never
// writes into the next.
func MakeRectangular(rows, cols uint) [][]float64 {
	arr := make([]float64, rows*cols)
	rect := make([][]float64, rows)
	for i := range rect {
		rect[i] = arr[:cols:cols]
		arr = arr[cols:]
	}
	return rect
}
