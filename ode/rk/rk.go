// Package rk implements embedded explicit Runge-Kutta pairs with adaptive
// step size control.
package rk

import (
	"fmt"
	"math"

	"github.com/s-kondo-09/quantum-physics/ode"
	"github.com/s-kondo-09/quantum-physics/util"
)

type rk struct {
	ode.IntegratorInfo
	method           RKMethod
	firstStageAsLast bool
	b, c, e          []float64
	a                [][]float64
}

func (r *rk) setDefaults(t, tEnd float64, c *ode.Config) {
	if c.MaxStepSize <= 0.0 {
		c.MaxStepSize = tEnd - t
	}
	if c.MinStepSize <= 0.0 {
		c.MinStepSize = 1e-10
	}
	if c.MaxStepCount == 0 {
		c.MaxStepCount = 1000000
	}
	if c.AbsoluteTolerance <= 0.0 {
		c.AbsoluteTolerance = 1e-4
	}
	if c.RelativeTolerance <= 0.0 {
		c.RelativeTolerance = c.AbsoluteTolerance
	}
}

// Integrate advances yT from t to tEnd. Unset fields of c are filled with
// defaults; c is modified.
func (r *rk) Integrate(t, tEnd float64, yT []float64, c *ode.Config) (stat ode.Statistics, err error) {
	stat.CurrentTime = t
	if c.Fcn == nil {
		return stat, ode.ErrNoFunction
	}
	if math.IsNaN(t) || math.IsNaN(tEnd) || tEnd < t {
		return stat, fmt.Errorf("%w: [%g, %g]", ode.ErrInvalidInterval, t, tEnd)
	}
	if t == tEnd {
		return stat, nil
	}
	r.setDefaults(t, tEnd, c)

	n := len(yT)
	fcnValue := make([]float64, n)
	yCurrent := make([]float64, n)
	yError := make([]float64, n)
	ks := util.MakeRectangular(r.Stages, uint(n))

	c.Fcn(t, yT, fcnValue)
	stat.EvaluationCount = 1

	stepEstimate := c.InitialStepSize
	if stepEstimate <= 0.0 {
		stepEstimate = ode.EstimateStepSize(t, yT, fcnValue, c, r.Order)
	}

	var stepNext float64
	for t < tEnd {
		stepNext = math.Min(stepEstimate, c.MaxStepSize)
		last := t+stepNext >= tEnd
		if last {
			stepNext = tEnd - t
		}
		stat.StepCount++

		r.stages(t, stepNext, yT, fcnValue, yCurrent, ks, c.Fcn)
		stat.EvaluationCount += r.Stages - 1

		// error estimate from the embedded pair
		for i := 0; i < n; i++ {
			yError[i] = stepNext * r.e[0] * fcnValue[i]
		}
		for stg := uint(1); stg < r.Stages; stg++ {
			for i := 0; i < n; i++ {
				yError[i] += stepNext * r.e[stg] * ks[stg][i]
			}
		}

		relativeError := 0.0
		for i := 0; i < n; i++ {
			tol := c.AbsoluteTolerance + c.RelativeTolerance*math.Abs(yT[i])
			relativeError += (yError[i] / tol) * (yError[i] / tol)
		}
		relativeError = math.Sqrt(relativeError / float64(n))

		stepEstimate = 0.9 * math.Exp(-math.Log(1.0e-8+relativeError)/float64(r.Order))
		stepEstimate = stepNext * math.Max(0.2, math.Min(stepEstimate, 2.0))

		if math.IsNaN(relativeError) {
			err = fmt.Errorf("%w: non-finite error estimate at t=%g", ode.ErrStepSizeTooSmall, t)
			break
		}

		if relativeError > 1.0 {
			stat.RejectedCount++
			if stepEstimate < c.MinStepSize {
				err = fmt.Errorf("%w: %g at t=%g", ode.ErrStepSizeTooSmall, stepEstimate, t)
				break
			}
		} else {
			for i := 0; i < n; i++ {
				yT[i] += stepNext * r.b[0] * fcnValue[i]
			}
			for stg := uint(1); stg < r.Stages; stg++ {
				for i := 0; i < n; i++ {
					yT[i] += stepNext * r.b[stg] * ks[stg][i]
				}
			}
			if last {
				t = tEnd
			} else {
				t += stepNext
			}

			if c.OneStepOnly {
				break
			}
			if r.firstStageAsLast {
				copy(fcnValue, ks[r.Stages-1])
			} else {
				c.Fcn(t, yT, fcnValue)
				stat.EvaluationCount++
			}
		}

		if stat.StepCount > c.MaxStepCount {
			err = fmt.Errorf("%w: %d steps, t=%g", ode.ErrMaxStepCount, stat.StepCount, t)
			break
		}
	}

	stat.CurrentTime = t
	stat.LastStepSize = stepNext
	stat.NextStepSize = stepEstimate
	return
}

// stages evaluates stages 1..s-1 of a step of size h into ks.
func (r *rk) stages(t, h float64, yT, fcnValue, yCurrent []float64, ks [][]float64, fcn ode.Function) {
	n := len(yT)
	for stg := uint(1); stg < r.Stages; stg++ {
		for i := 0; i < n; i++ {
			yCurrent[i] = yT[i] + h*r.a[stg][0]*fcnValue[i]
		}
		for ic := uint(1); ic < stg; ic++ {
			for i := 0; i < n; i++ {
				yCurrent[i] += h * r.a[stg][ic] * ks[ic][i]
			}
		}
		fcn(t+h*r.c[stg], yCurrent, ks[stg])
	}
}
