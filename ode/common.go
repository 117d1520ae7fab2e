package ode

import "math"

// EstimateStepSize guesses a first step size for a method of the given
// order from the size of yT, its derivative fcnValue and one explicit
// Euler step. The result never exceeds c.MaxStepSize.
func EstimateStepSize(t float64, yT, fcnValue []float64, c *Config, order uint) float64 {
	n := len(yT)
	scale := func(i int) float64 {
		return c.AbsoluteTolerance + c.RelativeTolerance*math.Abs(yT[i])
	}

	var dnf, dny float64
	for i := 0; i < n; i++ {
		sc := scale(i)
		dnf += (fcnValue[i] / sc) * (fcnValue[i] / sc)
		dny += (yT[i] / sc) * (yT[i] / sc)
	}

	h := 1e-6
	if math.Min(dnf, dny) >= 1e-10 {
		h = 1e-2 * math.Sqrt(dny/dnf)
	}
	h = math.Min(h, c.MaxStepSize)

	// explicit Euler step
	y2, f2 := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		y2[i] = yT[i] + h*fcnValue[i]
	}
	c.Fcn(t+h, y2, f2)

	var der2 float64
	for i := 0; i < n; i++ {
		d := (f2[i] - fcnValue[i]) / scale(i)
		der2 += d * d
	}

	// estimate for the second derivative
	der12 := math.Max(math.Sqrt(der2)/h, math.Sqrt(dnf))

	var h1 float64
	if der12 <= 1e-15 {
		h1 = math.Max(1e-6, h*1e-3)
	} else {
		h1 = math.Pow(1e-2/der12, 1/float64(order))
	}
	return math.Min(1e2*h, math.Min(h1, c.MaxStepSize))
}
