// Package theory holds the closed-form predictions the numerical results
// are compared against: the Landau-Zener probability, the adiabaticity
// parameter, the Stokes phase and the double passage interference
// formulas.
//
// Every formula takes the shifted gap m ± k·v·F/4 directly; see
// contour.ShiftedGap.
package theory

import (
	"math"
	"math/cmplx"
)

// LogLandauZener returns ln P = -π·gap²/(|v|·|F|).
func LogLandauZener(gap, slope, sweepRate float64) float64 {
	return -math.Pi * gap * gap / (math.Abs(slope) * math.Abs(sweepRate))
}

// LandauZener returns the Landau-Zener transition probability.
func LandauZener(gap, slope, sweepRate float64) float64 {
	return math.Exp(LogLandauZener(gap, slope, sweepRate))
}

// AdiabaticParameter returns δ = gap²/(2·|v|·|F|).
func AdiabaticParameter(gap, slope, sweepRate float64) float64 {
	return gap * gap / (2 * math.Abs(slope) * math.Abs(sweepRate))
}

// StokesPhase returns φ_s = π/4 + δ·(ln δ - 1) + arg Γ(1 - i·δ), with the
// argument taken on the principal branch. δ must be positive.
func StokesPhase(delta float64) float64 {
	if delta <= 0 {
		return math.NaN()
	}
	arg := cmplx.Phase(cmplx.Exp(LogGamma(complex(1, -delta))))
	return math.Pi/4 + delta*(math.Log(delta)-1) + arg
}

// AdiabaticDoublePassage returns 4·P·cos²(phase), the double passage
// occupation for a first-order transition probability P = exp(logP).
func AdiabaticDoublePassage(logP, phase float64) float64 {
	c := math.Cos(phase)
	return 4 * math.Exp(logP) * c * c
}

// HeuristicDoublePassage returns 4·P·(1-P)·cos²(φ_s + phase), the
// Stückelberg interference of two passages.
func HeuristicDoublePassage(logP, stokes, phase float64) float64 {
	p := math.Exp(logP)
	c := math.Cos(stokes + phase)
	return 4 * p * (1 - p) * c * c
}
