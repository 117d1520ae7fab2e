package problems

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/s-kondo-09/quantum-physics/adiabatic"
	"github.com/s-kondo-09/quantum-physics/hamiltonian"
)

// TwoLevel is the Schrödinger equation i·h·ψ' = H(t)·ψ of a two-level
// model, written as four real equations for ψ = (a+ib, c+id) with
//
//	H = [[z, x - i·y], [x + i·y, -z]].
type TwoLevel struct {
	model hamiltonian.Model
	start float64
	band  adiabatic.Band
	hbar  float64
}

// NewTwoLevel returns the problem for m starting at time start in the
// given adiabatic band.
func NewTwoLevel(m hamiltonian.Model, start float64, band adiabatic.Band) *TwoLevel {
	return &TwoLevel{model: m, start: start, band: band, hbar: m.Parameters().Dirac}
}

func (p *TwoLevel) Description() string {
	return fmt.Sprintf("two-level %s model from t=%g in the %v band", p.model.Name(), p.start, p.band)
}

// Initialize returns the eigenvector of the starting band as (a, b, c, d).
func (p *TwoLevel) Initialize() ([]float64, error) {
	v, err := adiabatic.Eigenvector(p.model, p.start, p.band)
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	return []float64{real(v[0]), imag(v[0]), real(v[1]), imag(v[1])}, nil
}

func (p *TwoLevel) Fcn(t float64, yT []float64, dy []float64) {
	x, y, z := p.model.Components(complex(t, 0)).Real()
	a, b, c, d := yT[0], yT[1], yT[2], yT[3]

	// H·ψ split into real and imaginary parts
	re0, im0 := z*a+x*c+y*d, z*b+x*d-y*c
	re1, im1 := x*a-y*b-z*c, x*b+y*a-z*d

	// ψ' = -i·H·ψ/h
	dy[0] = im0 / p.hbar
	dy[1] = -re0 / p.hbar
	dy[2] = im1 / p.hbar
	dy[3] = -re1 / p.hbar
}

// Norm returns |ψ|², which the exact flow keeps at one.
func Norm(yT []float64) float64 {
	return floats.Dot(yT[:4], yT[:4])
}
