// Package evolve integrates the time-dependent Schrödinger equation of a
// two-level model along the real time axis and records the occupation of
// a chosen state at evenly spaced sample times.
//
// The system starts in the lower adiabatic state. Integration proceeds
// segment by segment with an embedded Runge-Kutta pair from ode/rk; the
// norm of the state is checked at every sample.
package evolve
