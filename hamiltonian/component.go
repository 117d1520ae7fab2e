package hamiltonian

import "fmt"

// Component selects one entry of the Hamiltonian vector or its derivative.
type Component int

const (
	X Component = iota
	Y
	Z
	XDot
	YDot
	ZDot
	NumberOfComponents = int(iota)
)

var componentNames = [...]string{"x", "y", "z", "x_dot", "y_dot", "z_dot"}

func (c Component) String() string {
	if c < 0 || int(c) >= NumberOfComponents {
		return fmt.Sprintf("Component(%d)", int(c))
	}
	return componentNames[c]
}

// ParseComponent maps a component name such as "y_dot" to its Component.
func ParseComponent(name string) (Component, error) {
	for i, n := range componentNames {
		if n == name {
			return Component(i), nil
		}
	}
	return 0, fmt.Errorf("%w: component %q", ErrUnknownKind, name)
}

// Components is the Hamiltonian vector (x, y, z) and its derivative with
// respect to q, evaluated at one time.
type Components struct {
	X, Y, Z          complex128
	XDot, YDot, ZDot complex128
}

// At returns the entry selected by c. ok is false for a selector other
// than the six component constants.
func (h Components) At(c Component) (v complex128, ok bool) {
	switch c {
	case X:
		return h.X, true
	case Y:
		return h.Y, true
	case Z:
		return h.Z, true
	case XDot:
		return h.XDot, true
	case YDot:
		return h.YDot, true
	case ZDot:
		return h.ZDot, true
	}
	return 0, false
}

// Real returns the real parts of x, y and z. It is meant for real times,
// where the imaginary parts vanish.
func (h Components) Real() (x, y, z float64) {
	return real(h.X), real(h.Y), real(h.Z)
}
