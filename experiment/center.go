package experiment

import (
	"errors"
	"fmt"
	"math"

	"github.com/s-kondo-09/quantum-physics/contour"
	"github.com/s-kondo-09/quantum-physics/hamiltonian"
)

// ErrUnknownCenter is returned for a CenterPolicy name that does not exist.
var ErrUnknownCenter = errors.New("experiment: unknown center policy")

// CenterPolicy chooses the real part of the transition point.
type CenterPolicy int

const (
	// CenterCrossing uses the first real crossing of the model.
	CenterCrossing = CenterPolicy(iota)
	// CenterQuarterPeriod uses π/(2|F|).
	CenterQuarterPeriod
	// CenterNegativeQuarterPeriod uses -π/(2|F|).
	CenterNegativeQuarterPeriod
	// CenterSignedQuarterPeriod uses π/(2·(-F)), the crossing the sweep
	// reaches first for either direction.
	CenterSignedQuarterPeriod
	NumberOfCenterPolicies = int(iota)
)

var centerNames = [...]string{"crossing", "quarter-period", "negative-quarter-period", "signed-quarter-period"}

func (c CenterPolicy) String() string {
	if c < 0 || int(c) >= NumberOfCenterPolicies {
		return fmt.Sprintf("CenterPolicy(%d)", int(c))
	}
	return centerNames[c]
}

// ParseCenterPolicy maps a policy name to its CenterPolicy.
func ParseCenterPolicy(name string) (CenterPolicy, error) {
	for i, n := range centerNames {
		if n == name {
			return CenterPolicy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCenter, name)
}

// Center returns the crossing time the policy selects for m.
func (c CenterPolicy) Center(m hamiltonian.Model) (float64, error) {
	f := m.Parameters().SweepRate
	switch c {
	case CenterCrossing:
		crossings := m.Crossings()
		if len(crossings) == 0 {
			return 0, fmt.Errorf("%w: %s model has no crossing", ErrUnknownCenter, m.Name())
		}
		return crossings[0], nil
	case CenterQuarterPeriod:
		return contour.QuarterPeriod(f), nil
	case CenterNegativeQuarterPeriod:
		return -contour.QuarterPeriod(f), nil
	case CenterSignedQuarterPeriod:
		if f == 0 {
			return 0, fmt.Errorf("%w: signed quarter period needs a non-zero sweep rate", hamiltonian.ErrInvalidParameter)
		}
		return math.Pi / (2 * -f), nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownCenter, c)
}
