// Package fractal implements the generalized Mandelbrot recurrence and the
// coordinate grid it is sampled over.
//
// A render walks a square grid of seed coordinates c in the complex plane and
// iterates z' = z^power + c for each one, producing a finite trajectory of
// iterates. The package is pure math: projecting iterates onto pixels and
// accumulating them belongs to [github.com/san-kum/pixi/internal/canvas] and
// [github.com/san-kum/pixi/internal/render].
package fractal
