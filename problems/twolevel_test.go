package problems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s-kondo-09/quantum-physics/adiabatic"
	"github.com/s-kondo-09/quantum-physics/hamiltonian"
)

func TestTwoLevelInitialize(t *testing.T) {
	m, err := hamiltonian.NewTwisted(hamiltonian.Parameters{Slope: 1, Gap: 0.1, Twist: 1, SweepRate: 1, Dirac: 1})
	require.NoError(t, err)
	p := NewTwoLevel(m, -math.Pi, adiabatic.Lower)

	y, err := p.Initialize()
	require.NoError(t, err)
	assert.InDelta(t, 1, Norm(y), 1e-12)

	u, err := adiabatic.Eigenvector(m, -math.Pi, adiabatic.Lower)
	require.NoError(t, err)
	assert.InDelta(t, 1, adiabatic.Overlap(u, y), 1e-12)
	assert.Contains(t, p.Description(), "twisted")
}

func TestTwoLevelInitializeDegenerate(t *testing.T) {
	m, err := hamiltonian.NewLinear(hamiltonian.DefaultParameters())
	require.NoError(t, err)
	_, err = NewTwoLevel(m, 0, adiabatic.Upper).Initialize()
	assert.ErrorIs(t, err, adiabatic.ErrDegenerate)
}

func TestTwoLevelFcnConservesNorm(t *testing.T) {
	p0 := hamiltonian.Parameters{Slope: 1.3, Gap: 0.4, Twist: 0.7, SweepRate: -0.8, Dirac: 2}
	m, err := hamiltonian.NewLinear(p0)
	require.NoError(t, err)
	p := NewTwoLevel(m, 0.3, adiabatic.Lower)

	y := []float64{0.1, -0.5, 0.7, 0.2}
	dy := make([]float64, 4)
	for _, tc := range []float64{-1, 0.3, 2.5} {
		p.Fcn(tc, y, dy)
		// d|ψ|²/dt = 2·⟨y, y'⟩ vanishes for a Hermitian H
		dot := y[0]*dy[0] + y[1]*dy[1] + y[2]*dy[2] + y[3]*dy[3]
		assert.InDelta(t, 0, dot, 1e-12, "t=%g", tc)
	}
}

func TestTwoLevelEigenstateOnlyRotatesPhase(t *testing.T) {
	m, err := hamiltonian.NewLinear(hamiltonian.DefaultParameters())
	require.NoError(t, err)
	const tc = 0.7
	p := NewTwoLevel(m, tc, adiabatic.Upper)
	y, err := p.Initialize()
	require.NoError(t, err)

	dy := make([]float64, 4)
	p.Fcn(tc, y, dy)

	// ψ' = -i·E·ψ for an eigenstate
	e := math.Sqrt(tc*tc + 0.01)
	assert.InDelta(t, e*y[1], dy[0], 1e-12)
	assert.InDelta(t, -e*y[0], dy[1], 1e-12)
	assert.InDelta(t, e*y[3], dy[2], 1e-12)
	assert.InDelta(t, -e*y[2], dy[3], 1e-12)
}
