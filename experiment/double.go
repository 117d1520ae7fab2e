package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/s-kondo-09/quantum-physics/adiabatic"
	"github.com/s-kondo-09/quantum-physics/contour"
	"github.com/s-kondo-09/quantum-physics/evolve"
	"github.com/s-kondo-09/quantum-physics/hamiltonian"
	"github.com/s-kondo-09/quantum-physics/theory"
)

// DoublePassageSetup configures the comparison of a double passage
// through two avoided crossings with its analytic predictions.
type DoublePassageSetup struct {
	Eps0, Dz, Dy, SweepRate float64

	Sign contour.CurvatureSign
	Mode adiabatic.Mode
	// Samples is the number of trace samples over one period, default 500.
	Samples int

	// Integrator and Evolver default to contour.NewIntegrator and
	// evolve.NewEvolver observing the upper adiabatic band.
	Integrator *contour.Integrator
	Evolver    *evolve.Evolver
	Logger     *slog.Logger
}

// DefaultDoublePassage returns the setup ε₀=-50, Δz=4, Δy=20, F=-1.
func DefaultDoublePassage() DoublePassageSetup {
	return DoublePassageSetup{
		Eps0:      -50,
		Dz:        4,
		Dy:        20,
		SweepRate: -1,
		Sign:      contour.CurvatureMinus,
		Mode:      adiabatic.ModeTransformed,
		Samples:   500,
	}
}

type DoublePassageResult struct {
	Parameters hamiltonian.Parameters
	First      contour.TransitionPoint
	Second     contour.TransitionPoint

	LogProbability float64
	Probability    float64
	LandauZener    float64

	// Phase1 and Phase2 are the phases up to each transition point,
	// DynamicalPhase the real-axis phase between the crossings and Phase
	// their combination Phase2 - Phase1 + DynamicalPhase.
	Phase1, Phase2, DynamicalPhase, Phase float64

	AdiabaticParameter float64
	Stokes             float64
	Adiabatic          float64
	Heuristic          float64

	// Numerical is the final occupation of the evolved trace.
	Numerical float64
	Trace     evolve.Trace
}

// DoublePassage integrates the contour quantities and evolves the model
// over one period [-π/|F|, π/|F|] concurrently, then combines them with
// the closed forms.
func DoublePassage(ctx context.Context, s DoublePassageSetup) (DoublePassageResult, error) {
	var res DoublePassageResult
	p, err := hamiltonian.DoublePassageParameters(s.Eps0, s.Dz, s.Dy, s.SweepRate)
	if err != nil {
		return res, fmt.Errorf("experiment: double passage: %w", err)
	}
	m, err := hamiltonian.NewDoublePassage(p)
	if err != nil {
		return res, fmt.Errorf("experiment: double passage: %w", err)
	}
	res.Parameters = p

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("experiment", "double-passage")

	in := s.Integrator
	if in == nil {
		in = contour.NewIntegrator()
		in.Logger = logger
	}
	ev := s.Evolver
	if ev == nil {
		ev = evolve.NewEvolver()
		ev.Observable = evolve.AdiabaticUpper
		ev.Logger = logger
	}
	samples := s.Samples
	if samples <= 0 {
		samples = 500
	}

	quarter := contour.QuarterPeriod(p.SweepRate)
	if res.First, err = contour.Approximate(p, -quarter, s.Sign); err != nil {
		return res, err
	}
	if res.Second, err = contour.Approximate(p, quarter, s.Sign); err != nil {
		return res, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		est, err := in.LogProbability(m, res.First, s.Mode)
		res.LogProbability = est.Value
		return err
	})
	g.Go(func() error {
		est, err := in.Phase(m, res.First, s.Mode)
		res.Phase1 = est.Value
		return err
	})
	g.Go(func() error {
		est, err := in.Phase(m, res.Second, s.Mode)
		res.Phase2 = est.Value
		return err
	})
	g.Go(func() error {
		est, err := in.DynamicalPhase(m, -quarter, quarter, s.Mode)
		res.DynamicalPhase = est.Value
		return err
	})
	g.Go(func() error {
		tr, err := ev.Evolve(ctx, m, -2*quarter, 2*quarter, samples)
		res.Trace = tr
		res.Numerical = tr.Final()
		return err
	})
	if err := g.Wait(); err != nil {
		return res, fmt.Errorf("experiment: double passage: %w", err)
	}

	gap := contour.ShiftedGap(p, s.Sign)
	res.Probability = math.Exp(res.LogProbability)
	res.LandauZener = theory.LandauZener(gap, p.Slope, p.SweepRate)
	res.Phase = res.Phase2 - res.Phase1 + res.DynamicalPhase
	res.AdiabaticParameter = theory.AdiabaticParameter(gap, p.Slope, p.SweepRate)
	res.Stokes = theory.StokesPhase(res.AdiabaticParameter)
	res.Adiabatic = theory.AdiabaticDoublePassage(res.LogProbability, res.Phase)
	res.Heuristic = theory.HeuristicDoublePassage(res.LogProbability, res.Stokes, res.Phase)

	logger.Info("double passage",
		"probability", res.Probability, "landau_zener", res.LandauZener,
		"phase", res.Phase, "stokes", res.Stokes,
		"heuristic", res.Heuristic, "numerical", res.Numerical)
	return res, nil
}
