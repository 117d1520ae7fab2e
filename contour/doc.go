// Package contour evaluates Dykhne-type transition probabilities by
// integrating the adiabatic energy along a vertical line in the complex
// time plane,
//
//	ln P = -4·(-F)/|F| · ∫₀^{Im t_c} Re E(Re t_c + i·s) ds,
//
// where t_c is an approximation of the zero of the gap next to a level
// crossing. The same path gives the Stokes phase contribution through
// Im E, and the real axis between two crossings gives the dynamical phase.
package contour
