package hamiltonian

import (
	"fmt"
	"math"
)

// Parameters holds the physical constants of one experiment.
type Parameters struct {
	// Slope is the energy slope v (ε₀ in the double passage model).
	Slope float64
	// Gap is the minimal energy gap m (Δz).
	Gap float64
	// Twist is the geodesic curvature k.
	Twist float64
	// SweepRate is F. Its sign selects the direction of the sweep and
	// must stay fixed for a single passage.
	SweepRate float64
	// Dirac is the reduced Planck constant h, normally 1.
	Dirac float64
}

// DefaultParameters returns the single passage parameter set v=1, m=0.1,
// k=0, F=1, h=1.
func DefaultParameters() Parameters {
	return Parameters{
		Slope:     1,
		Gap:       0.1,
		Twist:     0,
		SweepRate: 1,
		Dirac:     1,
	}
}

// DoublePassageParameters maps the double passage constants (ε₀, Δz, Δy)
// onto Parameters, with the curvature k = 4·Δy/ε₀².
func DoublePassageParameters(eps0, dz, dy, sweepRate float64) (Parameters, error) {
	if eps0 == 0 {
		return Parameters{}, fmt.Errorf("%w: eps0 must be non-zero", ErrInvalidParameter)
	}
	p := Parameters{
		Slope:     eps0,
		Gap:       dz,
		Twist:     4 * dy / (eps0 * eps0),
		SweepRate: sweepRate,
		Dirac:     1,
	}
	return p, p.Validate()
}

// Validate reports whether p can be used by the models.
func (p Parameters) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"slope", p.Slope},
		{"gap", p.Gap},
		{"twist", p.Twist},
		{"sweep rate", p.SweepRate},
		{"dirac constant", p.Dirac},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParameter, f.name)
		}
	}
	if p.SweepRate == 0 {
		return fmt.Errorf("%w: sweep rate must be non-zero", ErrInvalidParameter)
	}
	if p.Dirac <= 0 {
		return fmt.Errorf("%w: dirac constant must be positive, got %g", ErrInvalidParameter, p.Dirac)
	}
	return nil
}

// Sweep returns the adiabatic phase q(t) = -F·t.
func (p Parameters) Sweep(t complex128) complex128 {
	return complex(-p.SweepRate, 0) * t
}

// Direction returns (-F)/|F|, the orientation factor shared by all
// contour integrals.
func (p Parameters) Direction() float64 {
	return -p.SweepRate / math.Abs(p.SweepRate)
}

// WithSweepRate returns a copy of p with F replaced.
func (p Parameters) WithSweepRate(f float64) Parameters {
	p.SweepRate = f
	return p
}

// WithSlope returns a copy of p with v replaced.
func (p Parameters) WithSlope(v float64) Parameters {
	p.Slope = v
	return p
}
