package hamiltonian

import "errors"

var (
	// ErrInvalidParameter indicates a physical parameter outside the model's domain.
	ErrInvalidParameter = errors.New("hamiltonian: invalid parameter")

	// ErrUnknownKind indicates a model kind or component name that could not be parsed.
	ErrUnknownKind = errors.New("hamiltonian: unknown kind")
)
