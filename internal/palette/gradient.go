package palette

import (
	"image/color"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Gradient maps a tone-mapped intensity in [0,1] to a display color by
// blending between fixed stops in Luv space.
type Gradient struct {
	name  string
	stops []colorful.Color
}

// At returns the gradient color for intensity t, clamped to [0,1].
func (g Gradient) At(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	n := len(g.stops)
	if n == 0 {
		c := uint8(255.0 * t)
		return color.RGBA{c, c, c, 255}
	}
	if n == 1 {
		return toRGBA(g.stops[0])
	}

	pos := t * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return toRGBA(g.stops[n-1])
	}
	return toRGBA(g.stops[i].BlendLuv(g.stops[i+1], pos-float64(i)))
}

func (g Gradient) Name() string { return g.name }

func toRGBA(c colorful.Color) color.RGBA {
	r, gr, b := c.Clamped().RGB255()
	return color.RGBA{r, gr, b, 255}
}

func hex(s string) colorful.Color {
	c, _ := colorful.Hex(s)
	return c
}

// Mono is the original grayscale display: intensity straight to all three
// channels. It is the zero-stop gradient.
var Mono = Gradient{name: "mono"}

var gradients = map[string]Gradient{
	"mono": Mono,
	"ember": {name: "ember", stops: []colorful.Color{
		hex("#000000"), hex("#4a1403"), hex("#b43b0a"), hex("#f59b2d"), hex("#fff3c4"),
	}},
	"ice": {name: "ice", stops: []colorful.Color{
		hex("#000000"), hex("#0b2a4a"), hex("#1668a5"), hex("#64c5eb"), hex("#eafaff"),
	}},
	"violet": {name: "violet", stops: []colorful.Color{
		hex("#000000"), hex("#2d0b45"), hex("#7221ab"), hex("#c86bd9"), hex("#ffe6ff"),
	}},
}

// Lookup returns the named gradient, falling back to Mono for unknown names.
func Lookup(name string) Gradient {
	if g, ok := gradients[name]; ok {
		return g
	}
	return Mono
}

// Names lists the available gradient names, sorted.
func Names() []string {
	names := make([]string, 0, len(gradients))
	for name := range gradients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
