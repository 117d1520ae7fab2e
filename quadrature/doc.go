// Package quadrature provides a globally adaptive Gauss-Legendre integrator
// for finite intervals.
//
// Each panel is integrated with an n-point and a 2n-point rule from
// gonum's integrate/quad; their difference is the panel error. The panel
// with the largest error is bisected until the total error meets the
// absolute or relative tolerance. Nodes are interior to each panel, so
// integrands singular at an end point (a square-root branch point, a
// vanishing denominator) are never evaluated there.
package quadrature
