package render

import (
	"image"
	"sync"

	"github.com/san-kum/pixi/internal/canvas"
	"github.com/san-kum/pixi/internal/palette"
)

// Session bundles the shared canvas and, in incremental mode, the walker
// behind a single mutex. The pair is one guarded resource: advancement and
// presentation exclude each other, and Reset clears both halves in the same
// critical section.
type Session struct {
	mu     sync.Mutex
	canvas *canvas.Canvas
	walker *Walker // nil for batch sessions
}

// NewSession wraps a canvas for batch rendering.
func NewSession(cv *canvas.Canvas) *Session {
	return &Session{canvas: cv}
}

// NewGrowSession wraps a canvas plus the incremental walker.
func NewGrowSession(cv *canvas.Canvas, w *Walker) *Session {
	return &Session{canvas: cv, walker: w}
}

// Mode reports the canvas accumulation mode; immutable, so no lock.
func (s *Session) Mode() canvas.Mode { return s.canvas.Mode() }

// Plot applies one seed's buffered trajectory. This is the batch workers'
// only write path; the iteration work happened before the lock.
func (s *Session) Plot(pts []canvas.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.Plot(pts)
}

// Advance runs up to n walker iterations, returning the count applied and
// whether the grid is exhausted. Zero applied with done=true means there is
// nothing left to do.
func (s *Session) Advance(n int) (applied int, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.walker == nil {
		return 0, true
	}
	applied = s.walker.advance(s.canvas, n)
	return applied, s.walker.finished
}

// Progress reports the walker's completed seeds out of the total.
func (s *Session) Progress() (done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.walker == nil {
		return 0, 0
	}
	return s.walker.progress()
}

// Snapshot converts the canvas for display. The lock is held for the full
// conversion so a frame never mixes pixels from two generations.
func (s *Session) Snapshot(dst *image.RGBA, factor float64, grad palette.Gradient) *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.RGBA(dst, factor, grad)
}

// Reset clears the canvas and rewinds the walker atomically.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.Reset()
	if s.walker != nil {
		s.walker.reset()
	}
}

// Coverage counts pixels with at least one contribution.
func (s *Session) Coverage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Coverage()
}

// Histogram buckets per-pixel intensity under the session lock.
func (s *Session) Histogram(buckets int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Histogram(buckets)
}
