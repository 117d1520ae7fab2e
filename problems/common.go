// Package problems defines initial value problems for the ode integrators.
package problems

// Problem is an initial value problem yT' = Fcn(t, yT) with a known
// starting state.
type Problem interface {
	Description() string
	Initialize() ([]float64, error)
	Fcn(t float64, yT []float64, dy []float64)
}
