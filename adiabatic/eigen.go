package adiabatic

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/s-kondo-09/quantum-physics/hamiltonian"
)

// Band selects the upper (+E) or lower (-E) adiabatic state.
type Band int

const (
	Upper = Band(iota)
	Lower
)

func (b Band) String() string {
	switch b {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

// Eigenvector returns the normalised eigenvector (x - i·y, ±E - z) of m at
// the real time t, with +E for the upper band.
func Eigenvector(m hamiltonian.Model, t float64, band Band) ([2]complex128, error) {
	var sign float64
	switch band {
	case Upper:
		sign = 1
	case Lower:
		sign = -1
	default:
		return [2]complex128{}, fmt.Errorf("%w: %v", ErrInvalidMode, band)
	}

	x, y, z := m.Components(complex(t, 0)).Real()
	e := sign * math.Sqrt(x*x+y*y+z*z)

	vec := [2]complex128{complex(x, -y), complex(e-z, 0)}
	norm := math.Sqrt(x*x + y*y + (e-z)*(e-z))
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return [2]complex128{}, fmt.Errorf("%w: %v band at t=%g", ErrDegenerate, band, t)
	}
	vec[0] /= complex(norm, 0)
	vec[1] /= complex(norm, 0)
	return vec, nil
}

// Overlap returns |⟨u|ψ⟩|² for a unit vector u and the state
// ψ = (a+ib, c+id).
func Overlap(u [2]complex128, state []float64) float64 {
	psi0 := complex(state[0], state[1])
	psi1 := complex(state[2], state[3])
	amp := cmplx.Conj(u[0])*psi0 + cmplx.Conj(u[1])*psi1
	return real(amp)*real(amp) + imag(amp)*imag(amp)
}
