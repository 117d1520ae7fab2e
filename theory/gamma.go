package theory

import (
	"math"
	"math/cmplx"
)

// Lanczos coefficients for g = 7, n = 9.
var lanczos = [...]float64{
	0.99999999999980993,
	676.5203681218851,
	-1259.1392167224028,
	771.32342877765313,
	-176.61502916214059,
	12.507343278686905,
	-0.13857109526572012,
	9.9843695780195716e-6,
	1.5056327351493116e-7,
}

const lanczosG = 7

// LogGamma returns a logarithm of Γ(z) for complex z by the Lanczos
// approximation, using the reflection formula for Re z < ½. The imaginary
// part is not reduced to (-π, π].
func LogGamma(z complex128) complex128 {
	if real(z) < 0.5 {
		return complex(math.Log(math.Pi), 0) - cmplx.Log(cmplx.Sin(complex(math.Pi, 0)*z)) - LogGamma(1-z)
	}
	z -= 1
	x := complex(lanczos[0], 0)
	for i := 1; i < len(lanczos); i++ {
		x += complex(lanczos[i], 0) / (z + complex(float64(i), 0))
	}
	t := z + complex(lanczosG+0.5, 0)
	return complex(0.5*math.Log(2*math.Pi), 0) + (z+0.5)*cmplx.Log(t) - t + cmplx.Log(x)
}
