package canvas

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/pixi/internal/palette"
)

func TestProjectCenter(t *testing.T) {
	c := New(100, 100, 50, ModeDensity)

	x, y, ok := c.Project(0)
	if !ok {
		t.Fatal("origin must project inside the frame")
	}
	// px = 50 - 0.5 = 49.5 truncates to 49; py = 50 + 0.5 = 50.5 truncates
	// to 50. The half-pixel offsets are part of the projection contract.
	if x != 49 || y != 50 {
		t.Errorf("origin projected to (%d,%d), want (49,50)", x, y)
	}
}

func TestProjectOutOfBounds(t *testing.T) {
	c := New(100, 100, 50, ModeDensity)

	tests := []struct {
		name string
		z    complex128
	}{
		{"right edge", complex(1.02, 0)},     // px >= width
		{"far left", complex(-1.5, 0)},       // px+1 < 0
		{"top overflow", complex(0, 1.5)},    // py < 0
		{"bottom overflow", complex(0, -1.5)}, // py >= height
	}

	for _, tt := range tests {
		if _, _, ok := c.Project(tt.z); ok {
			t.Errorf("%s: %v should be out of bounds", tt.name, tt.z)
		}
	}
}

func TestProjectLeftEdgeClamp(t *testing.T) {
	c := New(4, 4, 1, ModeDensity)

	// px = 2 - 2.5 - 0.5 lands exactly on -1.0, which the out-of-frame
	// guard admits; the cast must pin it to column 0, never -1.
	x, y, ok := c.Project(complex(-2.5, 2))
	if !ok {
		t.Fatal("exact left-edge point must stay in frame")
	}
	if x != 0 || y != 0 {
		t.Errorf("left-edge point projected to (%d,%d), want (0,0)", x, y)
	}

	c.Add(complex(-2.5, 2), color.RGBA{})
	if got := c.CountAt(0, 0); got != 1 {
		t.Errorf("left-edge hit counted %d times at (0,0), want 1", got)
	}

	// The same boundary on a lower row must land on that row's column 0,
	// not the previous row's last pixel.
	c.Add(complex(-2.5, 0), color.RGBA{})
	if got := c.CountAt(0, 2); got != 1 {
		t.Errorf("left-edge hit counted %d times at (0,2), want 1", got)
	}
	if got := c.CountAt(3, 1); got != 0 {
		t.Errorf("left-edge hit leaked onto (3,1), count %d", got)
	}

	// Anything past the boundary is dropped.
	if _, _, ok := c.Project(complex(-2.6, 2)); ok {
		t.Error("point past the left edge must be out of frame")
	}
}

func TestOutOfBoundsWriteDropped(t *testing.T) {
	c := New(100, 100, 50, ModeDensity)
	c.Add(complex(1.02, 0), color.RGBA{})
	c.Add(complex(50, 50), color.RGBA{})
	if c.Coverage() != 0 {
		t.Error("out-of-bounds writes must not mutate any pixel")
	}
}

func TestDensityAccumulation(t *testing.T) {
	c := New(10, 10, 10, ModeDensity)
	for i := 0; i < 3; i++ {
		c.Add(0, color.RGBA{})
	}

	x, y, _ := c.Project(0)
	if got := c.CountAt(x, y); got != 3 {
		t.Errorf("expected count 3, got %d", got)
	}
	if c.Coverage() != 1 {
		t.Errorf("expected exactly 1 covered pixel, got %d", c.Coverage())
	}
}

func TestDensitySaturates(t *testing.T) {
	c := New(4, 4, 1, ModeDensity)
	c.counts[0] = ^uint16(0) - 1

	z := complex(-1.5, 1.8) // projects onto pixel (0,0) at zoom 1
	x, y, ok := c.Project(z)
	if !ok || x != 0 || y != 0 {
		t.Fatalf("test point projected to (%d,%d,%v), want (0,0)", x, y, ok)
	}

	c.Add(z, color.RGBA{})
	c.Add(z, color.RGBA{})
	if got := c.CountAt(0, 0); got != ^uint16(0) {
		t.Errorf("counter must saturate at max, got %d", got)
	}
}

func TestBlendClosedFormAlpha(t *testing.T) {
	// Five composites of an identical translucent color over the same pixel:
	// accumulated alpha must match 1-(1-opacity)^5 within integer rounding.
	const opacity = 20.0 / 255.0
	c := New(10, 10, 10, ModeBlend)
	col := color.RGBA{255, 0, 0, 20}

	for i := 0; i < 5; i++ {
		c.Add(0, col)
	}

	x, y, _ := c.Project(0)
	got := c.At(x, y)

	want := 255.0 * (1.0 - math.Pow(1.0-opacity, 5))
	if math.Abs(float64(got.A)-want) > 3 {
		t.Errorf("accumulated alpha %d, want ~%.1f", got.A, want)
	}
	// Blending a color over itself must not move the channels.
	if got.R < 250 || got.G > 4 || got.B > 4 {
		t.Errorf("channels drifted: %v", got)
	}
}

func TestBlendFixedPointTrajectory(t *testing.T) {
	// The end-to-end scenario: a seed at the origin stays at z=0 for every
	// iteration, so all writes land on the single center pixel.
	c := New(10, 10, 10, ModeBlend)
	col := color.RGBA{128, 200, 64, 20}

	pts := make([]Point, 5)
	for i := range pts {
		pts[i] = Point{Z: 0, Color: col}
	}
	c.Plot(pts)

	if c.Coverage() != 1 {
		t.Fatalf("expected the center pixel only, coverage %d", c.Coverage())
	}
	x, y, _ := c.Project(0)
	if c.At(x, y).A == 0 {
		t.Error("center pixel received no contribution")
	}
}

func TestReset(t *testing.T) {
	for _, mode := range []Mode{ModeBlend, ModeDensity} {
		c := New(8, 8, 4, mode)
		c.Add(0, color.RGBA{255, 255, 255, 200})
		if c.Coverage() == 0 {
			t.Fatalf("%v: setup write did not land", mode)
		}
		c.Reset()
		if c.Coverage() != 0 {
			t.Errorf("%v: reset left pixels behind", mode)
		}
	}
}

func TestHistogramSkipsUntouchedPixels(t *testing.T) {
	c := New(4, 4, 1, ModeDensity)
	c.counts[0] = 10
	c.counts[1] = 10
	c.counts[2] = 1

	hist := c.Histogram(14)
	total := 0
	for _, n := range hist {
		total += n
	}
	if total != 3 {
		t.Errorf("histogram should count 3 touched pixels, got %d", total)
	}
}

func TestRGBAIdempotent(t *testing.T) {
	c := New(16, 16, 8, ModeDensity)
	c.Add(complex(0.1, 0.1), color.RGBA{})
	c.Add(complex(0.1, 0.1), color.RGBA{})

	a := c.RGBA(nil, 50, palette.Mono)
	b := c.RGBA(nil, 50, palette.Mono)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two conversions without intervening writes must be identical")
	}

	var bufA, bufB bytes.Buffer
	if err := EncodePNG(&bufA, a); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := EncodePNG(&bufB, b); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(bufA.Bytes(), bufB.Bytes()) {
		t.Error("exporting twice must yield byte-identical output")
	}
}

func TestRGBADensityToneMapping(t *testing.T) {
	c := New(8, 8, 4, ModeDensity)
	z := complex(0.05, 0.05)
	for i := 0; i < 100; i++ {
		c.Add(z, color.RGBA{})
	}

	img := c.RGBA(nil, 50, palette.Mono)
	x, y, _ := c.Project(z)
	hit := img.RGBAAt(x, y)
	empty := img.RGBAAt(0, 0)

	if hit.R <= empty.R {
		t.Errorf("hit pixel %v not brighter than empty pixel %v", hit, empty)
	}
	want := uint8(255.0 * (1.0 - math.Exp(-100.0/50.0)))
	if delta := int(hit.R) - int(want); delta < -1 || delta > 1 {
		t.Errorf("tone-mapped value %d, want ~%d", hit.R, want)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("blend"); err != nil || m != ModeBlend {
		t.Errorf("blend: got %v, %v", m, err)
	}
	if m, err := ParseMode("density"); err != nil || m != ModeDensity {
		t.Errorf("density: got %v, %v", m, err)
	}
	if _, err := ParseMode("sparkle"); err == nil {
		t.Error("unknown mode must be rejected")
	}
}
