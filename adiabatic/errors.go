package adiabatic

import "errors"

var (
	// ErrSingular indicates a vanishing x²+y² in the azimuthal angular velocity.
	ErrSingular = errors.New("adiabatic: singular azimuthal angle")

	// ErrNonFinite indicates an energy or angular velocity that is NaN or infinite.
	ErrNonFinite = errors.New("adiabatic: non-finite value")

	// ErrDegenerate indicates an eigenvector candidate of zero norm.
	ErrDegenerate = errors.New("adiabatic: degenerate eigenvector")

	// ErrInvalidMode indicates an unknown energy mode or band.
	ErrInvalidMode = errors.New("adiabatic: invalid mode")
)
