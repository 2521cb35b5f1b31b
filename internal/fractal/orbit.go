package fractal

import "math"

// Orbit holds the per-seed iteration parameters shared by a whole render.
type Orbit struct {
	Power  float64
	Limit  int
	Offset complex128 // initial z, usually 0

	// SkipFirst discards the first iterate before recording. With Offset at
	// the origin the first iterate of every seed is the seed itself, which
	// stamps the sampling grid onto the picture as a faint square.
	SkipFirst bool

	// Escape stops the walk once both components of z leave +-Bounds.
	Escape bool
	Bounds float64
}

// Trace iterates the recurrence for one seed, appending every recorded
// iterate to dst and returning it. Callers reuse dst's backing array across
// seeds to keep the hot loop allocation-free.
func (o Orbit) Trace(c complex128, dst []complex128) []complex128 {
	z := o.Offset
	if o.SkipFirst {
		z = Step(z, c, o.Power)
	}
	for i := 0; i < o.Limit; i++ {
		z = Step(z, c, o.Power)
		dst = append(dst, z)
		if o.Escaped(z) {
			break
		}
	}
	return dst
}

// Escaped reports whether z meets the escape condition. Always false when
// escape checking is disabled.
func (o Orbit) Escaped(z complex128) bool {
	return o.Escape && math.Abs(real(z)) > o.Bounds && math.Abs(imag(z)) > o.Bounds
}
