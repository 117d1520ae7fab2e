package contour

import (
	"fmt"
	"math"

	"github.com/s-kondo-09/quantum-physics/hamiltonian"
)

// CurvatureSign selects the twist correction in m ± k·v·F/4. Which one
// applies depends on the model and on which crossing is integrated, so
// callers always choose it. The Abs variants replace v or F by its
// magnitude, for sweeps whose grid crosses zero.
type CurvatureSign int

const (
	// CurvaturePlus is m + k·v·F/4.
	CurvaturePlus = CurvatureSign(iota)
	// CurvatureMinus is m - k·v·F/4.
	CurvatureMinus
	// CurvaturePlusAbsRate is m + k·v·|F|/4.
	CurvaturePlusAbsRate
	// CurvatureMinusAbsSlope is m - k·|v|·F/4.
	CurvatureMinusAbsSlope
	NumberOfCurvatureSigns = int(iota)
)

var curvatureNames = [...]string{"plus", "minus", "plus-abs-rate", "minus-abs-slope"}

func (s CurvatureSign) String() string {
	if s < 0 || int(s) >= NumberOfCurvatureSigns {
		return fmt.Sprintf("CurvatureSign(%d)", int(s))
	}
	return curvatureNames[s]
}

// Factor returns the sign in front of the correction, +1 or -1.
func (s CurvatureSign) Factor() float64 {
	if s == CurvatureMinus || s == CurvatureMinusAbsSlope {
		return -1
	}
	return 1
}

// ParseCurvatureSign maps a name such as "minus" or "plus-abs-rate" to its
// CurvatureSign. "+" and "-" are accepted for the plain signs.
func ParseCurvatureSign(name string) (CurvatureSign, error) {
	switch name {
	case "+":
		return CurvaturePlus, nil
	case "-":
		return CurvatureMinus, nil
	}
	for i, n := range curvatureNames {
		if n == name {
			return CurvatureSign(i), nil
		}
	}
	return 0, fmt.Errorf("%w: curvature sign %q", hamiltonian.ErrUnknownKind, name)
}

// TransitionPoint is the approximate complex time at which the adiabatic
// gap vanishes.
type TransitionPoint struct {
	Re, Im float64
}

func (tp TransitionPoint) Time() complex128 {
	return complex(tp.Re, tp.Im)
}

// QuarterPeriod returns π/(2|F|), the time at which the periodic models
// cross.
func QuarterPeriod(f float64) float64 {
	return math.Pi / (2 * math.Abs(f))
}

// ShiftedGap returns the gap of the linearised model after the twist
// correction selected by sign, m ± k·v·F/4 or one of its Abs variants.
func ShiftedGap(p hamiltonian.Parameters, sign CurvatureSign) float64 {
	v, f := p.Slope, p.SweepRate
	switch sign {
	case CurvaturePlusAbsRate:
		f = math.Abs(f)
	case CurvatureMinusAbsSlope:
		v = math.Abs(v)
	}
	return p.Gap + sign.Factor()*p.Twist*v*f/4
}

// Approximate returns the transition point next to the crossing at time
// center. The imaginary part is the zero of the linearised gap,
//
//	Im = |ShiftedGap(p, sign)| / (|v|·(-F)),
//
// and carries the sign of -F, so the path always enters the half of the
// q plane where the gap closes. It is exact for the untwisted Linear
// model and a first-order estimate otherwise.
func Approximate(p hamiltonian.Parameters, center float64, sign CurvatureSign) (TransitionPoint, error) {
	if err := p.Validate(); err != nil {
		return TransitionPoint{}, err
	}
	if p.Slope == 0 {
		return TransitionPoint{}, fmt.Errorf("%w: transition point needs a non-zero slope", hamiltonian.ErrInvalidParameter)
	}
	if sign < 0 || int(sign) >= NumberOfCurvatureSigns {
		return TransitionPoint{}, fmt.Errorf("%w: %v", hamiltonian.ErrUnknownKind, sign)
	}
	if math.IsNaN(center) || math.IsInf(center, 0) {
		return TransitionPoint{}, fmt.Errorf("%w: crossing time %g", hamiltonian.ErrInvalidParameter, center)
	}
	im := math.Abs(ShiftedGap(p, sign)) / (math.Abs(p.Slope) * (-p.SweepRate))
	return TransitionPoint{Re: center, Im: im}, nil
}
