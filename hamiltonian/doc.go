// Package hamiltonian defines the driven two-level Hamiltonians
//
//	H(t) = x(t)·σx + y(t)·σy + z(t)·σz
//
// swept through an avoided crossing by the adiabatic phase q(t) = -F·t.
// Every model can be evaluated at complex time, which the contour
// integration of the adiabatic gap relies on.
//
// The derivative components XDot, YDot and ZDot are taken with respect
// to the sweep phase q, not to t. The time derivative of x is -F·XDot.
package hamiltonian
