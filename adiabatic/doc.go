// Package adiabatic computes the instantaneous eigenenergy and eigenvectors
// of a two-level Hamiltonian.
//
// The plain energy is the principal square root of x²+y²+z². The
// transformed energy applies the unitary rotation that removes the
// azimuthal motion of (x, y) and shifts z by half its angular velocity:
//
//	E = sqrt(x² + y² + (z + ½·(-F)·φ')²),  φ' = (-x·y' + x'·y)/(x² + y²)
//
// Both are evaluated at complex time. The principal square root is adequate
// away from the zero of the gap; BranchTracker detects the sign flips the
// principal branch introduces along a path.
package adiabatic
