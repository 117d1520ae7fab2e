package evolve

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/s-kondo-09/quantum-physics/adiabatic"
	"github.com/s-kondo-09/quantum-physics/hamiltonian"
	"github.com/s-kondo-09/quantum-physics/ode"
	"github.com/s-kondo-09/quantum-physics/ode/rk"
	"github.com/s-kondo-09/quantum-physics/problems"
)

// Evolver integrates a model from its lower adiabatic state. The zero
// value uses RK2 with the ode defaults; use NewEvolver for the settings
// the double passage comparison needs.
type Evolver struct {
	Method            rk.RKMethod
	AbsoluteTolerance float64
	RelativeTolerance float64
	// NormTolerance bounds ||ψ|²-1| at every sample, default 1e-6.
	NormTolerance float64
	Observable    Observable
	Logger        *slog.Logger
}

// NewEvolver returns a DoPri5 evolver with tolerances of 1e-10.
func NewEvolver() *Evolver {
	return &Evolver{
		Method:            rk.DoPri5,
		AbsoluteTolerance: 1e-10,
		RelativeTolerance: 1e-10,
		NormTolerance:     1e-6,
	}
}

// Trace is the sampled evolution of one run.
type Trace struct {
	Times         []float64
	Probabilities []float64
	States        [][4]float64
	// MaxNormDeviation is the largest ||ψ|²-1| over the samples.
	MaxNormDeviation float64
	Statistics       ode.Statistics
}

// Final returns the last recorded probability, or NaN for an empty trace.
func (tr Trace) Final() float64 {
	if len(tr.Probabilities) == 0 {
		return math.NaN()
	}
	return tr.Probabilities[len(tr.Probabilities)-1]
}

// Evolve integrates m from t0 to t1 and samples the observable at
// samples evenly spaced times including both ends.
func (e *Evolver) Evolve(ctx context.Context, m hamiltonian.Model, t0, t1 float64, samples int) (Trace, error) {
	if samples < 2 {
		return Trace{}, fmt.Errorf("%w: need at least two samples, got %d", ErrInvalidSchedule, samples)
	}
	if math.IsNaN(t0) || math.IsNaN(t1) || math.IsInf(t0, 0) || math.IsInf(t1, 0) || t1 <= t0 {
		return Trace{}, fmt.Errorf("%w: interval [%g, %g]", ErrInvalidSchedule, t0, t1)
	}
	if e.Observable < 0 || int(e.Observable) >= NumberOfObservables {
		return Trace{}, fmt.Errorf("%w: %v", ErrUnknownObservable, e.Observable)
	}
	integrator, err := rk.NewRK(e.Method)
	if err != nil {
		return Trace{}, err
	}

	logger := e.logger().With("model", m.Name(), "method", e.Method.String(), "observable", e.Observable.String())
	problem := problems.NewTwoLevel(m, t0, adiabatic.Lower)
	state, err := problem.Initialize()
	if err != nil {
		return Trace{}, fmt.Errorf("evolve: %w", err)
	}

	times := floats.Span(make([]float64, samples), t0, t1)
	tr := Trace{
		Times:         make([]float64, 0, samples),
		Probabilities: make([]float64, 0, samples),
		States:        make([][4]float64, 0, samples),
	}
	if err := tr.record(e.Observable, m, times[0], state); err != nil {
		return tr, fmt.Errorf("evolve: %w", err)
	}

	var nextStep float64
	for i := 1; i < samples; i++ {
		if err := ctx.Err(); err != nil {
			return tr, err
		}

		config := ode.Config{
			Fcn:               problem.Fcn,
			AbsoluteTolerance: e.AbsoluteTolerance,
			RelativeTolerance: e.RelativeTolerance,
			InitialStepSize:   nextStep,
		}
		stat, err := integrator.Integrate(times[i-1], times[i], state, &config)
		tr.Statistics.Add(stat)
		if err != nil {
			logger.Warn("integration failed", "t", stat.CurrentTime, "err", err)
			return tr, fmt.Errorf("%w: segment [%g, %g]: %w", ErrStepFailure, times[i-1], times[i], err)
		}
		if floats.HasNaN(state) {
			return tr, fmt.Errorf("%w: non-finite state at t=%g", ErrStepFailure, times[i])
		}
		nextStep = stat.NextStepSize

		if err := tr.record(e.Observable, m, times[i], state); err != nil {
			return tr, fmt.Errorf("evolve: %w", err)
		}
	}

	logger.Debug("evolved",
		"steps", tr.Statistics.StepCount, "rejected", tr.Statistics.RejectedCount,
		"final", tr.Final(), "max_norm_deviation", tr.MaxNormDeviation)

	if tr.MaxNormDeviation > e.normTolerance() {
		logger.Warn("norm drift", "max_norm_deviation", tr.MaxNormDeviation, "tolerance", e.normTolerance())
		return tr, fmt.Errorf("%w: %g exceeds %g", ErrNormDrift, tr.MaxNormDeviation, e.normTolerance())
	}
	return tr, nil
}

func (tr *Trace) record(o Observable, m hamiltonian.Model, t float64, state []float64) error {
	p, err := o.measure(m, t, state)
	if err != nil {
		return err
	}
	tr.Times = append(tr.Times, t)
	tr.Probabilities = append(tr.Probabilities, p)
	tr.States = append(tr.States, [4]float64{state[0], state[1], state[2], state[3]})
	if d := math.Abs(problems.Norm(state) - 1); d > tr.MaxNormDeviation {
		tr.MaxNormDeviation = d
	}
	return nil
}

func (e *Evolver) normTolerance() float64 {
	if e.NormTolerance > 0 {
		return e.NormTolerance
	}
	return 1e-6
}

func (e *Evolver) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
