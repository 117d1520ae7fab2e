package util

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// ArrayEpsEquals reports whether x and y have the same length and agree
// entry by entry within eps, absolutely or relative to the larger entry.
func ArrayEpsEquals(x, y []float64, eps float64) bool {
	return floats.EqualApprox(x, y, eps)
}

// EpsEqual is the scalar form of ArrayEpsEquals.
func EpsEqual(x, y, eps float64) bool {
	return scalar.EqualWithinAbsOrRel(x, y, eps, eps)
}
