package fractal

import "math/cmplx"

// Step applies one iteration of the recurrence z' = z^power + c.
//
// The common power 2.0 takes a plain multiply; any other exponent goes through
// polar-form exponentiation. Precision degrades smoothly for large |z|, there
// is no divergence guard here.
func Step(z, c complex128, power float64) complex128 {
	if power == 2.0 {
		return z*z + c
	}
	return cmplx.Pow(z, complex(power, 0)) + c
}
