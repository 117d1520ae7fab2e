package quadrature

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

var (
	// ErrNotConverged indicates the tolerance was not met within MaxIntervals
	// or the panels could not be split any further.
	ErrNotConverged = errors.New("quadrature: not converged")

	// ErrInvalidBounds indicates a non-finite integration bound.
	ErrInvalidBounds = errors.New("quadrature: invalid bounds")

	// ErrNonFinite indicates the integrand produced NaN or an infinity.
	ErrNonFinite = errors.New("quadrature: non-finite integrand")
)

type Config struct {
	// AbsoluteTolerance on the total error estimate, default 1e-10.
	AbsoluteTolerance float64
	// RelativeTolerance on the total error estimate, default 1e-8.
	RelativeTolerance float64
	// MaxIntervals bounds the number of panels, default 2000.
	MaxIntervals int
	// Nodes is the size of the coarse rule, default 10.
	Nodes int
}

// DefaultConfig returns the tolerances used by the contour integrals.
func DefaultConfig() Config {
	return Config{
		AbsoluteTolerance: 1e-10,
		RelativeTolerance: 1e-8,
		MaxIntervals:      2000,
		Nodes:             10,
	}
}

func (c *Config) setDefaults() {
	d := DefaultConfig()
	if c.AbsoluteTolerance <= 0 {
		c.AbsoluteTolerance = d.AbsoluteTolerance
	}
	if c.RelativeTolerance <= 0 {
		c.RelativeTolerance = d.RelativeTolerance
	}
	if c.MaxIntervals <= 0 {
		c.MaxIntervals = d.MaxIntervals
	}
	if c.Nodes <= 0 {
		c.Nodes = d.Nodes
	}
}

// Result of an integration. On ErrNotConverged it holds the best estimate
// reached.
type Result struct {
	Value         float64
	ErrorEstimate float64
	Intervals     int
	Evaluations   int
}

// Integrate approximates the integral of f from a to b. a may exceed b, in
// which case the sign of the result is reversed.
func Integrate(f func(float64) float64, a, b float64, cfg Config) (res Result, err error) {
	cfg.setDefaults()

	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return res, fmt.Errorf("%w: [%g, %g]", ErrInvalidBounds, a, b)
	}
	if a == b {
		return res, nil
	}

	sign := 1.0
	if a > b {
		a, b = b, a
		sign = -1
	}

	in := integration{f: f, nodes: cfg.Nodes}
	first := in.panel(a, b)
	panels := panelHeap{first}
	total, errTotal := first.value, first.err

	for errTotal > math.Max(cfg.AbsoluteTolerance, cfg.RelativeTolerance*math.Abs(total)) {
		if math.IsNaN(total) || math.IsInf(total, 0) {
			err = ErrNonFinite
			break
		}
		if len(panels) >= cfg.MaxIntervals {
			err = fmt.Errorf("%w: %d intervals, error estimate %g", ErrNotConverged, len(panels), errTotal)
			break
		}

		worst := heap.Pop(&panels).(panel)
		mid := worst.lo + 0.5*(worst.hi-worst.lo)
		if mid <= worst.lo || mid >= worst.hi {
			heap.Push(&panels, worst)
			err = fmt.Errorf("%w: interval [%g, %g] cannot be split", ErrNotConverged, worst.lo, worst.hi)
			break
		}
		left, right := in.panel(worst.lo, mid), in.panel(mid, worst.hi)
		heap.Push(&panels, left)
		heap.Push(&panels, right)

		total += left.value + right.value - worst.value
		errTotal += left.err + right.err - worst.err
	}

	// re-sum to drop the rounding accumulated by the running updates
	total, errTotal = 0, 0
	for _, p := range panels {
		total += p.value
		errTotal += p.err
	}
	if err == nil && (math.IsNaN(total) || math.IsInf(total, 0)) {
		err = ErrNonFinite
	}

	res = Result{
		Value:         sign * total,
		ErrorEstimate: errTotal,
		Intervals:     len(panels),
		Evaluations:   in.evaluations,
	}
	return
}

type integration struct {
	f           func(float64) float64
	nodes       int
	evaluations int
}

func (in *integration) panel(lo, hi float64) panel {
	coarse := quad.Fixed(in.f, lo, hi, in.nodes, quad.Legendre{}, 0)
	fine := quad.Fixed(in.f, lo, hi, 2*in.nodes, quad.Legendre{}, 0)
	in.evaluations += 3 * in.nodes
	return panel{lo: lo, hi: hi, value: fine, err: math.Abs(fine - coarse)}
}

type panel struct {
	lo, hi     float64
	value, err float64
}

// panelHeap orders panels by decreasing error.
type panelHeap []panel

func (h panelHeap) Len() int            { return len(h) }
func (h panelHeap) Less(i, j int) bool  { return h[i].err > h[j].err }
func (h panelHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *panelHeap) Push(x interface{}) { *h = append(*h, x.(panel)) }
func (h *panelHeap) Pop() interface{} {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}
