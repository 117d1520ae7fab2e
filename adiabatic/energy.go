package adiabatic

import (
	"fmt"
	"math/cmplx"

	"github.com/s-kondo-09/quantum-physics/hamiltonian"
)

// Mode selects how the adiabatic energy is computed.
type Mode int

const (
	ModePlain = Mode(iota)
	ModeTransformed
	NumberOfModes = int(iota)
)

var modeNames = [...]string{"plain", "transformed"}

func (m Mode) String() string {
	if m < 0 || int(m) >= NumberOfModes {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps "plain" or "transformed" to its Mode.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, name)
}

// Energy evaluates the adiabatic energy of m at t in the given mode.
// eps regularises the denominator of φ' in ModeTransformed and is ignored
// otherwise.
func Energy(m hamiltonian.Model, t complex128, mode Mode, eps float64) (complex128, error) {
	switch mode {
	case ModePlain:
		return Plain(m, t)
	case ModeTransformed:
		return Transformed(m, t, eps)
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidMode, mode)
}

// Plain returns sqrt(x²+y²+z²) on the principal branch.
func Plain(m hamiltonian.Model, t complex128) (complex128, error) {
	h := m.Components(t)
	e := cmplx.Sqrt(h.X*h.X + h.Y*h.Y + h.Z*h.Z)
	if !finite(e) {
		return 0, fmt.Errorf("%w: energy at t=%v", ErrNonFinite, t)
	}
	return e, nil
}

// Transformed returns the energy in the frame co-rotating with the (x, y)
// component, sqrt(x²+y²+(z+½·(-F)·φ')²).
func Transformed(m hamiltonian.Model, t complex128, eps float64) (complex128, error) {
	h := m.Components(t)
	phi, err := phiDot(h, eps)
	if err != nil {
		return 0, fmt.Errorf("transformed energy at t=%v: %w", t, err)
	}
	f := m.Parameters().SweepRate
	z := h.Z + complex(0.5*(-f), 0)*phi
	e := cmplx.Sqrt(h.X*h.X + h.Y*h.Y + z*z)
	if !finite(e) {
		return 0, fmt.Errorf("%w: transformed energy at t=%v", ErrNonFinite, t)
	}
	return e, nil
}

// PhiDot returns the derivative of the azimuthal angle of (x, y) with
// respect to q:
//
//	φ' = (-x·y' + x'·y) / (x² + y² + eps)
//
// With eps == 0 the result is exact and an exactly vanishing denominator
// is reported as ErrSingular. A positive eps trades a bias of order eps/(x²+y²)
// for a finite value at the singular point.
func PhiDot(m hamiltonian.Model, t complex128, eps float64) (complex128, error) {
	phi, err := phiDot(m.Components(t), eps)
	if err != nil {
		return 0, fmt.Errorf("phi dot at t=%v: %w", t, err)
	}
	return phi, nil
}

func phiDot(h hamiltonian.Components, eps float64) (complex128, error) {
	num := -h.X*h.YDot + h.XDot*h.Y
	den := h.X*h.X + h.Y*h.Y + complex(eps, 0)
	if den == 0 {
		return 0, ErrSingular
	}
	phi := num / den
	if !finite(phi) {
		return 0, ErrNonFinite
	}
	return phi, nil
}

func finite(c complex128) bool {
	return !cmplx.IsNaN(c) && !cmplx.IsInf(c)
}
