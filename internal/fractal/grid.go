package fractal

// Axis returns the sampled coordinates -bounds, -bounds+delta, -bounds+2*delta,
// ... strictly below bounds. The sequence is deterministic for a given
// (bounds, delta) pair; parallel dispatch may consume it out of order but the
// enumeration itself never changes between runs.
func Axis(bounds, delta float64) []float64 {
	coords := make([]float64, 0, int(2*bounds/delta)+1)
	for i := 0; ; i++ {
		x := -bounds + float64(i)*delta
		if x >= bounds {
			break
		}
		coords = append(coords, x)
	}
	return coords
}

// Grid materializes the full cross product of Axis with itself: every seed
// coordinate x+iy covering the square [-bounds,bounds) x [-bounds,bounds).
// The result holds len(Axis)^2 seeds, so callers pay O(n^2) memory for fine
// deltas; Config validation keeps delta positive so the walk terminates.
func Grid(bounds, delta float64) []complex128 {
	axis := Axis(bounds, delta)
	seeds := make([]complex128, 0, len(axis)*len(axis))
	for _, x := range axis {
		for _, y := range axis {
			seeds = append(seeds, complex(x, y))
		}
	}
	return seeds
}
