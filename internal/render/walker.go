package render

import (
	"image/color"

	"github.com/san-kum/pixi/internal/canvas"
	"github.com/san-kum/pixi/internal/fractal"
)

// Walker is the incremental renderer's state: one seed in flight at a time,
// advanced a bounded number of iterations per presentation tick. It is not
// safe for concurrent use on its own; Session serializes every access.
type Walker struct {
	seeds    []complex128
	orbit    fractal.Orbit
	colorize Colorizer
	density  bool

	idx      int
	z        complex128
	iter     int
	warmed   bool
	finished bool
}

// NewWalker builds a walker over the full seed grid. The grid is consumed in
// enumeration order; a finished seed is never revisited.
func NewWalker(seeds []complex128, orbit fractal.Orbit, colorize Colorizer, density bool) *Walker {
	return &Walker{
		seeds:    seeds,
		orbit:    orbit,
		colorize: colorize,
		density:  density,
		finished: len(seeds) == 0,
	}
}

// advance runs up to n iterations against cv and returns how many were
// applied. Once the last seed terminates the walker is finished for good.
func (w *Walker) advance(cv *canvas.Canvas, n int) int {
	applied := 0
	for applied < n && !w.finished {
		c := w.seeds[w.idx]

		if !w.warmed {
			w.z = w.orbit.Offset
			if w.orbit.SkipFirst {
				w.z = fractal.Step(w.z, c, w.orbit.Power)
			}
			w.warmed = true
		}

		w.z = fractal.Step(w.z, c, w.orbit.Power)
		var col color.RGBA
		if !w.density {
			col = w.colorize(c, w.z)
		}
		cv.Add(w.z, col)
		w.iter++
		applied++

		if w.iter >= w.orbit.Limit || w.orbit.Escaped(w.z) {
			w.idx++
			w.iter = 0
			w.warmed = false
			if w.idx >= len(w.seeds) {
				w.finished = true
			}
		}
	}
	return applied
}

func (w *Walker) reset() {
	w.idx = 0
	w.iter = 0
	w.warmed = false
	w.finished = len(w.seeds) == 0
}

// progress reports completed seeds out of the total.
func (w *Walker) progress() (done, total int) {
	return w.idx, len(w.seeds)
}
