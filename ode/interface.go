// Package ode defines the integrator interface shared by the initial
// value problem solvers and their configuration.
package ode

import "errors"

var (
	// ErrStepSizeTooSmall is returned when a rejected step would have to
	// shrink below Config.MinStepSize.
	ErrStepSizeTooSmall = errors.New("ode: step size too small")

	// ErrMaxStepCount is returned when Config.MaxStepCount steps did not
	// reach the target time.
	ErrMaxStepCount = errors.New("ode: maximum step count exceeded")

	// ErrNoFunction is returned when Config.Fcn is unset.
	ErrNoFunction = errors.New("ode: no right hand side")

	// ErrInvalidInterval is returned for a target time before the start.
	ErrInvalidInterval = errors.New("ode: invalid interval")
)

// Function writes y'(t) for the state y into dy. It must not retain y or dy.
type Function func(t float64, y []float64, dy []float64)

// Config controls one call to Integrator.Integrate. Zero values select the
// integrator's defaults.
type Config struct {
	// InitialStepSize is the first trial step; EstimateStepSize is used
	// when it is not positive.
	InitialStepSize float64
	// MinStepSize aborts the integration with ErrStepSizeTooSmall once a
	// rejected step would fall below it.
	MinStepSize float64
	MaxStepSize float64

	// Per-component error bound atol + rtol·|y|.
	AbsoluteTolerance float64
	RelativeTolerance float64

	// MaxStepCount bounds accepted plus rejected steps.
	MaxStepCount uint
	// OneStepOnly returns after the first accepted step.
	OneStepOnly bool

	Fcn Function
}

// Statistics reports the work done by one or more integrations.
type Statistics struct {
	StepCount       uint
	RejectedCount   uint
	EvaluationCount uint

	LastStepSize float64
	// NextStepSize is the step the error control proposes for a
	// continuation; pass it as InitialStepSize to resume.
	NextStepSize float64
	CurrentTime  float64
}

// Add accumulates the counters of other into s and takes over its step
// sizes and time.
func (s *Statistics) Add(other Statistics) {
	s.StepCount += other.StepCount
	s.RejectedCount += other.RejectedCount
	s.EvaluationCount += other.EvaluationCount
	s.LastStepSize = other.LastStepSize
	s.NextStepSize = other.NextStepSize
	s.CurrentTime = other.CurrentTime
}

// Integrator advances yT in place from t to tEnd.
type Integrator interface {
	Info() IntegratorInfo
	Integrate(t, tEnd float64, yT []float64, config *Config) (stat Statistics, err error)
}

type IntegratorInfo struct {
	Name          string
	Stages, Order uint
}

func (i *IntegratorInfo) Info() IntegratorInfo {
	return *i
}
