package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/s-kondo-09/quantum-physics/adiabatic"
	"github.com/s-kondo-09/quantum-physics/contour"
	"github.com/s-kondo-09/quantum-physics/hamiltonian"
	"github.com/s-kondo-09/quantum-physics/quadrature"
	"github.com/s-kondo-09/quantum-physics/theory"
)

// Point is one row of a sweep.
type Point struct {
	// Param is the swept value, F for rate sweeps and v for slope sweeps.
	Param          float64
	Probability    float64
	LogProbability float64
	// Theory is the Landau-Zener probability of the shifted gap.
	Theory  float64
	Skipped bool
	Reason  string
}

// Sweep describes a transition probability scan over one parameter.
type Sweep struct {
	Kind       hamiltonian.Kind
	Parameters hamiltonian.Parameters
	Sign       contour.CurvatureSign
	Center     CenterPolicy
	Mode       adiabatic.Mode

	Grid []float64
	// Exclude skips grid points with |value| <= Exclude. A swept value of
	// zero is always skipped. Points whose integral fails numerically are
	// skipped too, with the error as reason.
	Exclude float64

	// Workers bounds the number of points evaluated at once; zero or less
	// means one.
	Workers int

	// Integrator defaults to contour.NewIntegrator with Logger.
	Integrator *contour.Integrator
	Logger     *slog.Logger
}

// RateSweep scans the sweep rate F over the grid at fixed v.
func RateSweep(ctx context.Context, s Sweep) ([]Point, error) {
	return s.run(ctx, "rate", hamiltonian.Parameters.WithSweepRate)
}

// SlopeSweep scans the slope v over the grid at fixed F.
func SlopeSweep(ctx context.Context, s Sweep) ([]Point, error) {
	return s.run(ctx, "slope", hamiltonian.Parameters.WithSlope)
}

func (s Sweep) run(ctx context.Context, name string, with func(hamiltonian.Parameters, float64) hamiltonian.Parameters) ([]Point, error) {
	logger := s.logger().With("sweep", name, "model", s.Kind.String(), "sign", s.Sign.String(), "mode", s.Mode.String())
	in := s.Integrator
	if in == nil {
		in = contour.NewIntegrator()
		in.Logger = logger
	}

	points := make([]Point, len(s.Grid))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Workers, 1))

	for i, x := range s.Grid {
		i, x := i, x
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pt, err := s.point(in, with(s.Parameters, x), x)
			if err != nil {
				return fmt.Errorf("experiment: %s sweep at %g: %w", name, x, err)
			}
			if pt.Skipped {
				logger.Warn("skipping point", "param", x, "reason", pt.Reason)
			}
			points[i] = pt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("sweep finished", "points", len(points))
	return points, nil
}

func (s Sweep) point(in *contour.Integrator, p hamiltonian.Parameters, x float64) (Point, error) {
	pt := Point{Param: x}
	if math.Abs(x) <= s.Exclude {
		pt.Skipped = true
		pt.Reason = fmt.Sprintf("|%g| is within the excluded zone %g", x, s.Exclude)
		return pt, nil
	}

	m, err := hamiltonian.New(s.Kind, p)
	if err != nil {
		return pt, err
	}
	center, err := s.Center.Center(m)
	if err != nil {
		return pt, err
	}
	tp, err := contour.Approximate(p, center, s.Sign)
	if err != nil {
		return pt, err
	}
	est, err := in.LogProbability(m, tp, s.Mode)
	if numericalFailure(err) {
		pt.Skipped = true
		pt.Reason = err.Error()
		return pt, nil
	}
	if err != nil {
		return pt, err
	}

	pt.LogProbability = est.Value
	pt.Probability = est.Probability()
	pt.Theory = theory.LandauZener(contour.ShiftedGap(p, s.Sign), p.Slope, p.SweepRate)
	return pt, nil
}

// numericalFailure reports whether err comes from the integrand or the
// quadrature at this point rather than from the sweep setup.
func numericalFailure(err error) bool {
	for _, target := range []error{
		adiabatic.ErrSingular,
		adiabatic.ErrNonFinite,
		adiabatic.ErrDegenerate,
		quadrature.ErrNotConverged,
		quadrature.ErrNonFinite,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s Sweep) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
