// Package palette maps trajectory values onto colors: the HSV sector
// conversion used for blend renders, the seed-hue policy, and the tone-mapped
// gradients used to display density renders.
package palette

import (
	"image/color"
	"math"
	"math/cmplx"
)

// HSVToRGBA converts an HSV triple to an 8-bit RGBA color with opaque alpha.
// Hue is in degrees and reduced to a sector index 0-5; saturation and value
// are in [0,1]. The alpha channel of an accumulated point is set by the
// caller, not here.
func HSVToRGBA(hue, sat, val float64) color.RGBA {
	hi := math.Mod(math.Floor(hue/60.0), 6.0)
	f := hue/60.0 - math.Floor(hue/60.0)
	p := val * (1.0 - sat)
	q := val * (1.0 - f*sat)
	t := val * (1.0 - (1.0-f)*sat)

	switch int(hi) {
	case 0:
		return color.RGBA{chn(val), chn(t), chn(p), 255}
	case 1:
		return color.RGBA{chn(q), chn(val), chn(p), 255}
	case 2:
		return color.RGBA{chn(p), chn(val), chn(t), 255}
	case 3:
		return color.RGBA{chn(p), chn(q), chn(val), 255}
	case 4:
		return color.RGBA{chn(t), chn(p), chn(val), 255}
	case 5:
		return color.RGBA{chn(val), chn(p), chn(q), 255}
	default:
		// Unreachable for well-formed input, but an out-of-range sector
		// must never index past the wheel.
		return color.RGBA{0, 0, 0, 255}
	}
}

func chn(v float64) uint8 {
	return uint8(255.0 * v)
}

// SeedHue derives the hue for a whole trajectory from its seed's distance to
// the origin. Every iterate of one seed shares this hue, which paints rings
// of color by radius rather than escape time.
func SeedHue(c complex128, bounds, colourFactor float64) float64 {
	return colourFactor * 360.0 * math.Cos(cmplx.Abs(c)/bounds)
}

// ToneMap compresses an unbounded hit count into [0,1) for display:
// 1 - exp(-count/factor). Smaller factors brighten sparse regions.
func ToneMap(count uint16, factor float64) float64 {
	return 1.0 - math.Exp(-float64(count)/factor)
}
