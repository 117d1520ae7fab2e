package evolve

import (
	"fmt"

	"github.com/s-kondo-09/quantum-physics/adiabatic"
	"github.com/s-kondo-09/quantum-physics/hamiltonian"
)

// Observable selects the probability recorded at each sample.
type Observable int

const (
	// Diabatic is a²+b², the weight of the first basis state.
	Diabatic = Observable(iota)
	// AdiabaticUpper is the projection on the instantaneous upper eigenvector.
	AdiabaticUpper
	// AdiabaticLower is the projection on the instantaneous lower eigenvector.
	AdiabaticLower
	NumberOfObservables = int(iota)
)

var observableNames = [...]string{"diabatic", "adiabatic-upper", "adiabatic-lower"}

func (o Observable) String() string {
	if o < 0 || int(o) >= NumberOfObservables {
		return fmt.Sprintf("Observable(%d)", int(o))
	}
	return observableNames[o]
}

// ParseObservable maps an observable name to its Observable.
func ParseObservable(name string) (Observable, error) {
	for i, n := range observableNames {
		if n == name {
			return Observable(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownObservable, name)
}

func (o Observable) measure(m hamiltonian.Model, t float64, state []float64) (float64, error) {
	var band adiabatic.Band
	switch o {
	case Diabatic:
		return state[0]*state[0] + state[1]*state[1], nil
	case AdiabaticUpper:
		band = adiabatic.Upper
	case AdiabaticLower:
		band = adiabatic.Lower
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownObservable, o)
	}
	u, err := adiabatic.Eigenvector(m, t, band)
	if err != nil {
		return 0, err
	}
	return adiabatic.Overlap(u, state), nil
}
