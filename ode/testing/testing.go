// Package testing holds reference problems with known solutions and a
// runner that checks an ode.Integrator against them.
package testing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s-kondo-09/quantum-physics/ode"
	"github.com/s-kondo-09/quantum-physics/util"
)

type solution func(float64) []float64

// x^2 + C
func order2(t float64) []float64 {
	return []float64{t * t}
}
func order2Deriv(t float64, y []float64, dy []float64) {
	dy[0] = 2 * t
}

// 10*x^3+ PI * x^2 +142 * x + 10
func order3(t float64) []float64 {
	return []float64{10*math.Pow(t, 3) + math.Pi*math.Pow(t, 2) + 142*t + 10}
}
func order3Deriv(t float64, y []float64, dy []float64) {
	dy[0] = 30*math.Pow(t, 2) + 2*math.Pi*t + 142
}

// 83.23454 * x^4 + 42.4543*x^3+ E * x^2
func order4(t float64) []float64 {
	return []float64{83.23454*math.Pow(t, 4) + 42.4543*math.Pow(t, 3) + math.E*math.Pow(t, 2)}
}
func order4Deriv(t float64, y []float64, dy []float64) {
	dy[0] = 4*83.23454*math.Pow(t, 3) + 3*42.4543*math.Pow(t, 2) + 2*math.E*t
}

// (cos ωt, sin ωt), a rotation that keeps the norm at one
const omega = 3.0

func rotation(t float64) []float64 {
	return []float64{math.Cos(omega * t), math.Sin(omega * t)}
}
func rotationDeriv(t float64, y []float64, dy []float64) {
	dy[0] = -omega * y[1]
	dy[1] = omega * y[0]
}

type IntegrationTest struct {
	TMin, TMax float64
	Sol        solution
	Fcn        ode.Function
	// Order is the lowest method order that integrates the problem exactly,
	// zero for problems that are only solved to tolerance.
	Order uint
	Name  string
}

var IntegrationTests = []IntegrationTest{
	{-10, 10, order2, order2Deriv, 2, "x^2"},
	{-10, 10, order3, order3Deriv, 3, "x^3"},
	{-10, 10, order4, order4Deriv, 4, "x^4"},
	{-2, 2, rotation, rotationDeriv, 0, "rotation"},
}

// RunIntegratorTests integrates every reference problem the method can
// handle over random intervals and compares against the exact solution.
func RunIntegratorTests(t *testing.T, methods []ode.Integrator, iterations int) {
	const eps = 1e-4
	rng := rand.New(rand.NewSource(1))

	for _, m := range methods {
		if m == nil {
			continue
		}
		info := m.Info()

		if testing.Verbose() {
			t.Logf("%s\tTest\tT0\tTE\tSteps\tReject\tEval\tLast h", info.Name)
		}

		for _, v := range IntegrationTests {
			if v.Order > info.Order {
				t.Logf("Skipped Test %s for RKMethod %s, order too high", v.Name, info.Name)
				continue
			}
			for i := 0; i < iterations; i++ {
				t0 := v.TMin + rng.Float64()*(v.TMax-v.TMin)
				te := t0 + rng.Float64()*(v.TMax-t0)
				y := v.Sol(t0)
				ye := v.Sol(te)

				config := ode.Config{Fcn: v.Fcn}
				if v.Order == 0 {
					config.AbsoluteTolerance = 1e-9
					config.RelativeTolerance = 1e-9
				}
				stat, err := m.Integrate(t0, te, y, &config)

				assert.NoError(t, err, "%s %s", info.Name, v.Name)
				assert.True(t, util.EpsEqual(stat.CurrentTime, te, eps),
					"%s %s: tried to integrate up to %f but only reached %f", info.Name, v.Name, te, stat.CurrentTime)
				assert.True(t, util.ArrayEpsEquals(y, ye, eps),
					"%s %s: expected %v but result was %v", info.Name, v.Name, ye, y)

				if testing.Verbose() {
					t.Logf(" \t%s\t%.2f\t%.2f\t%d\t%d\t%d\t%.2g",
						v.Name, t0, te, stat.StepCount, stat.RejectedCount, stat.EvaluationCount, stat.LastStepSize)
				}
			}
		}
	}
}
