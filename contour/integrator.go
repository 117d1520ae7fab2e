package contour

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/s-kondo-09/quantum-physics/adiabatic"
	"github.com/s-kondo-09/quantum-physics/hamiltonian"
	"github.com/s-kondo-09/quantum-physics/quadrature"
)

// Integrator integrates the adiabatic energy along complex and real time
// paths. The zero value uses quadrature.DefaultConfig, an exact φ' and
// slog.Default.
type Integrator struct {
	Quadrature quadrature.Config

	// Epsilon regularises the denominator of φ' in the transformed mode.
	// Zero keeps φ' exact and turns a vanishing x²+y² into an error.
	Epsilon float64

	// ContinuitySamples is the number of points at which the path is
	// scanned for jumps of the principal square root before integrating.
	// Zero means 64, a negative value disables the scan.
	ContinuitySamples int

	Logger *slog.Logger
}

// NewIntegrator returns an Integrator with default settings.
func NewIntegrator() *Integrator {
	return &Integrator{Quadrature: quadrature.DefaultConfig()}
}

// Estimate is the result of one contour integral.
type Estimate struct {
	Value         float64
	ErrorEstimate float64
	Intervals     int
	Evaluations   int
	// BranchJumps counts sign flips of the principal square root found
	// while scanning the path.
	BranchJumps int
}

// Probability returns exp(Value), for estimates of ln P.
func (e Estimate) Probability() float64 {
	return math.Exp(e.Value)
}

// LogProbability returns ln P = -4·(-F)/|F| · ∫₀^{Im tp} Re E(Re tp + i·s) ds.
func (in *Integrator) LogProbability(m hamiltonian.Model, tp TransitionPoint, mode adiabatic.Mode) (Estimate, error) {
	est, err := in.vertical(m, tp, mode, realPart, "log probability")
	est.Value *= -4 * m.Parameters().Direction()
	est.ErrorEstimate *= 4
	return est, err
}

// Phase returns (-F)/|F| · ∫₀^{Im tp} Im E(Re tp + i·s) ds, the phase
// picked up on the way to the transition point.
func (in *Integrator) Phase(m hamiltonian.Model, tp TransitionPoint, mode adiabatic.Mode) (Estimate, error) {
	est, err := in.vertical(m, tp, mode, imagPart, "phase")
	est.Value *= m.Parameters().Direction()
	return est, err
}

// DynamicalPhase returns (-F)/|F| · ∫_{t0}^{t1} Re E(t) dt along the real
// axis, the phase accumulated between two crossings.
func (in *Integrator) DynamicalPhase(m hamiltonian.Model, t0, t1 float64, mode adiabatic.Mode) (Estimate, error) {
	path := func(s float64) complex128 { return complex(s, 0) }
	est, err := in.integrate(m, path, t0, t1, mode, realPart, "dynamical phase")
	est.Value *= m.Parameters().Direction()
	return est, err
}

func (in *Integrator) vertical(m hamiltonian.Model, tp TransitionPoint, mode adiabatic.Mode, part func(complex128) float64, what string) (Estimate, error) {
	if math.IsNaN(tp.Re) || math.IsNaN(tp.Im) || math.IsInf(tp.Re, 0) || math.IsInf(tp.Im, 0) {
		return Estimate{}, fmt.Errorf("contour: %s: %w: transition point %v", what, hamiltonian.ErrInvalidParameter, tp)
	}
	path := func(s float64) complex128 { return complex(tp.Re, s) }
	return in.integrate(m, path, 0, tp.Im, mode, part, what)
}

func (in *Integrator) integrate(m hamiltonian.Model, path func(float64) complex128, lo, hi float64,
	mode adiabatic.Mode, part func(complex128) float64, what string) (est Estimate, err error) {
	logger := in.logger().With("model", m.Name(), "integral", what, "mode", mode.String())

	est.BranchJumps = in.scanBranch(m, path, lo, hi, mode)
	if est.BranchJumps > 0 {
		logger.Warn("principal square root jumps along the path",
			"jumps", est.BranchJumps, "from", path(lo), "to", path(hi))
	}

	var evalErr error
	f := func(s float64) float64 {
		if evalErr != nil {
			return 0
		}
		e, err := adiabatic.Energy(m, path(s), mode, in.Epsilon)
		if err != nil {
			evalErr = err
			return 0
		}
		return part(e)
	}

	res, err := quadrature.Integrate(f, lo, hi, in.Quadrature)
	est.Value = res.Value
	est.ErrorEstimate = res.ErrorEstimate
	est.Intervals = res.Intervals
	est.Evaluations = res.Evaluations

	if evalErr != nil {
		return est, fmt.Errorf("contour: %s: %w", what, evalErr)
	}
	if err != nil {
		if errors.Is(err, quadrature.ErrNotConverged) {
			logger.Warn("quadrature did not converge",
				"value", res.Value, "error_estimate", res.ErrorEstimate, "intervals", res.Intervals)
		}
		return est, fmt.Errorf("contour: %s: %w", what, err)
	}

	logger.Debug("integrated",
		"value", res.Value, "error_estimate", res.ErrorEstimate, "intervals", res.Intervals)
	return est, nil
}

// scanBranch follows the principal energy over evenly spaced interior
// points of the path and counts its sign flips. Points where the energy
// cannot be evaluated are skipped; the quadrature reports them if it hits
// them.
func (in *Integrator) scanBranch(m hamiltonian.Model, path func(float64) complex128, lo, hi float64, mode adiabatic.Mode) int {
	n := in.ContinuitySamples
	if n < 0 || lo == hi {
		return 0
	}
	if n == 0 {
		n = 64
	}

	var tracker adiabatic.BranchTracker
	for j := 0; j < n; j++ {
		s := lo + (hi-lo)*(float64(j)+0.5)/float64(n)
		e, err := adiabatic.Energy(m, path(s), mode, in.Epsilon)
		if err != nil {
			continue
		}
		tracker.Follow(e)
	}
	return tracker.Jumps()
}

func (in *Integrator) logger() *slog.Logger {
	if in.Logger != nil {
		return in.Logger
	}
	return slog.Default()
}

func realPart(c complex128) float64 { return real(c) }
func imagPart(c complex128) float64 { return imag(c) }
