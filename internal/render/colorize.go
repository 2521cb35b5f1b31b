package render

import (
	"image/color"

	"github.com/san-kum/pixi/internal/palette"
)

// Colorizer produces the color contributed by one trajectory iterate z of a
// given seed. Density renders ignore color entirely.
type Colorizer func(seed, z complex128) color.RGBA

// SeedColorizer hues every iterate by the seed's distance from the origin,
// painting rings of color by radius. The hue is constant across one
// trajectory.
func SeedColorizer(bounds, colourFactor, opacity float64) Colorizer {
	alpha := opacityByte(opacity)
	return func(seed, _ complex128) color.RGBA {
		col := palette.HSVToRGBA(palette.SeedHue(seed, bounds, colourFactor), 1.0, 1.0)
		col.A = alpha
		return col
	}
}

// StepColorizer hues each iterate by its own position instead of the
// seed's, shifting color along the trajectory.
func StepColorizer(bounds, colourFactor, opacity float64) Colorizer {
	alpha := opacityByte(opacity)
	return func(_, z complex128) color.RGBA {
		col := palette.HSVToRGBA(palette.SeedHue(z, bounds, colourFactor), 1.0, 1.0)
		col.A = alpha
		return col
	}
}

func opacityByte(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity*255.0 + 0.5)
}
