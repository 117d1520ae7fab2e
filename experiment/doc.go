// Package experiment runs the parameter sweeps and the double passage
// comparison on top of the contour, evolve and theory packages.
//
// Sweeps evaluate their grid points concurrently. Every point binds its
// own copy of the parameters and results keep the order of the grid.
package experiment
