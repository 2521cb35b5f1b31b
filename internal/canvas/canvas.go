// Package canvas implements the shared raster a render accumulates into: an
// affine projection from the complex plane onto pixels plus two accumulation
// strategies, alpha blending and density counting.
//
// A Canvas is plain data and does no locking of its own; concurrent access is
// arbitrated by [github.com/san-kum/pixi/internal/render.Session].
package canvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/san-kum/pixi/internal/palette"
)

// Mode selects how a projected point combines with existing pixel content.
type Mode int

const (
	// ModeBlend composites a translucent color over the pixel.
	ModeBlend Mode = iota
	// ModeDensity increments a saturating per-pixel hit counter.
	ModeDensity
)

func (m Mode) String() string {
	if m == ModeDensity {
		return "density"
	}
	return "blend"
}

// ParseMode maps a config string onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "blend":
		return ModeBlend, nil
	case "density":
		return ModeDensity, nil
	default:
		return 0, fmt.Errorf("unknown accumulation mode %q (want blend or density)", s)
	}
}

// Point is one trajectory iterate ready to be accumulated.
type Point struct {
	Z     complex128
	Color color.RGBA
}

// Canvas is the mutable framebuffer shared by every trajectory worker and
// read by the presentation path.
type Canvas struct {
	width, height int
	zoom          float64
	mode          Mode

	// Exactly one of these is allocated, per mode. The blend buffer starts
	// fully transparent: after n hits of the same opacity a, pixel alpha is
	// 1-(1-a)^n, and display flattens over black.
	pix    []color.RGBA
	counts []uint16
}

// New allocates a canvas for one render session.
func New(width, height int, zoom float64, mode Mode) *Canvas {
	c := &Canvas{width: width, height: height, zoom: zoom, mode: mode}
	if mode == ModeDensity {
		c.counts = make([]uint16, width*height)
	} else {
		c.pix = make([]color.RGBA, width*height)
	}
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }
func (c *Canvas) Mode() Mode  { return c.mode }

// Project maps a complex value onto integer pixel coordinates. The 0.5
// offsets and the truncating casts reproduce the established projection
// exactly; changing them shifts the picture by a pixel. ok is false when the
// point falls outside the frame, which is an expected, frequent condition.
func (c *Canvas) Project(z complex128) (x, y int, ok bool) {
	px := float64(c.width)/2.0 + real(z)*c.zoom - 0.5
	py := float64(c.height)/2.0 - imag(z)*c.zoom + 0.5

	if px+1.0 < 0 || py < 0 {
		return 0, 0, false
	}

	x, y = int(px), int(py)
	// px values in [-1,0) truncate to 0, but exactly -1.0 truncates to -1;
	// pin it to column 0 the way a saturating cast would.
	if x < 0 {
		x = 0
	}
	if x >= c.width || y >= c.height {
		return 0, 0, false
	}
	return x, y, true
}

// Add accumulates a single projected point. Out-of-frame points are dropped
// silently.
func (c *Canvas) Add(z complex128, col color.RGBA) {
	x, y, ok := c.Project(z)
	if !ok {
		return
	}
	i := y*c.width + x
	if c.mode == ModeDensity {
		if c.counts[i] < ^uint16(0) {
			c.counts[i]++
		}
		return
	}
	c.pix[i] = blend(c.pix[i], col)
}

// Plot accumulates a whole buffered trajectory. Callers hold the session
// lock for the duration; the expensive iteration work happened before.
func (c *Canvas) Plot(points []Point) {
	for _, p := range points {
		c.Add(p.Z, p.Color)
	}
}

// Reset clears every pixel, keeping the allocation.
func (c *Canvas) Reset() {
	for i := range c.pix {
		c.pix[i] = color.RGBA{}
	}
	for i := range c.counts {
		c.counts[i] = 0
	}
}

// At returns the accumulated color of one pixel in blend mode.
func (c *Canvas) At(x, y int) color.RGBA {
	if c.mode != ModeBlend {
		return color.RGBA{}
	}
	return c.pix[y*c.width+x]
}

// CountAt returns the hit count of one pixel in density mode.
func (c *Canvas) CountAt(x, y int) uint16 {
	if c.mode != ModeDensity {
		return 0
	}
	return c.counts[y*c.width+x]
}

// Coverage counts pixels that received at least one contribution.
func (c *Canvas) Coverage() int {
	n := 0
	for _, p := range c.pix {
		if p.A > 0 {
			n++
		}
	}
	for _, ct := range c.counts {
		if ct > 0 {
			n++
		}
	}
	return n
}

// Histogram buckets the per-pixel intensities (hit counts in density mode,
// accumulated alpha in blend mode) into the given number of bins, skipping
// untouched pixels.
func (c *Canvas) Histogram(buckets int) []int {
	if buckets <= 0 {
		return nil
	}

	max := 0
	each := func(fn func(v int)) {
		for _, ct := range c.counts {
			fn(int(ct))
		}
		for _, p := range c.pix {
			fn(int(p.A))
		}
	}
	each(func(v int) {
		if v > max {
			max = v
		}
	})
	if max == 0 {
		return make([]int, buckets)
	}

	step := (max + buckets - 1) / buckets
	if step == 0 {
		step = 1
	}

	hist := make([]int, buckets)
	each(func(v int) {
		if v == 0 {
			return
		}
		i := v / step
		if i >= buckets {
			i = buckets - 1
		}
		hist[i]++
	})
	return hist
}

// RGBA converts the canvas into a displayable 8-bit image, reusing dst when
// it has the right dimensions. Density counts go through the inverse
// exponential tone map and the gradient; blend pixels flatten over black.
func (c *Canvas) RGBA(dst *image.RGBA, factor float64, grad palette.Gradient) *image.RGBA {
	bounds := image.Rect(0, 0, c.width, c.height)
	if dst == nil || dst.Bounds() != bounds {
		dst = image.NewRGBA(bounds)
	}

	if c.mode == ModeDensity {
		for i, ct := range c.counts {
			col := grad.At(palette.ToneMap(ct, factor))
			o := i * 4
			dst.Pix[o+0] = col.R
			dst.Pix[o+1] = col.G
			dst.Pix[o+2] = col.B
			dst.Pix[o+3] = 255
		}
		return dst
	}

	for i, p := range c.pix {
		a := uint32(p.A)
		o := i * 4
		dst.Pix[o+0] = uint8(uint32(p.R) * a / 255)
		dst.Pix[o+1] = uint8(uint32(p.G) * a / 255)
		dst.Pix[o+2] = uint8(uint32(p.B) * a / 255)
		dst.Pix[o+3] = 255
	}
	return dst
}

// blend composites src over dst per channel. The buffers are kept
// straight-alpha, so channels are premultiplied for the composite and
// divided back out by the resulting alpha.
func blend(dst, src color.RGBA) color.RGBA {
	sa := float64(src.A) / 255.0
	da := float64(dst.A) / 255.0
	outA := sa + da*(1.0-sa)
	if outA <= 0 {
		return color.RGBA{}
	}

	comp := func(s, d uint8) uint8 {
		v := (float64(s)*sa + float64(d)*da*(1.0-sa)) / outA
		return uint8(v + 0.5)
	}
	return color.RGBA{
		R: comp(src.R, dst.R),
		G: comp(src.G, dst.G),
		B: comp(src.B, dst.B),
		A: uint8(outA*255.0 + 0.5),
	}
}
