package evolve

import "errors"

var (
	// ErrStepFailure wraps an integrator failure. The trace holds the
	// samples reached before it.
	ErrStepFailure = errors.New("evolve: integration step failed")

	// ErrNormDrift indicates |ψ|² left 1 ± NormTolerance. The full trace
	// is still returned.
	ErrNormDrift = errors.New("evolve: norm drift")

	// ErrInvalidSchedule indicates a bad time interval or sample count.
	ErrInvalidSchedule = errors.New("evolve: invalid schedule")

	// ErrUnknownObservable is returned for an Observable without a name.
	ErrUnknownObservable = errors.New("evolve: unknown observable")
)
