package render

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/san-kum/pixi/internal/canvas"
	"github.com/san-kum/pixi/internal/fractal"
)

// Dispatcher fans the seed grid out across a worker pool. Seeds are
// independent, so the partition is a plain chunking with no ordering
// guarantee; the only shared state is the session.
type Dispatcher struct {
	session  *Session
	orbit    fractal.Orbit
	colorize Colorizer
	seeds    []complex128
	workers  int
	pool     *bufPool

	done atomic.Int64
}

// NewDispatcher prepares a batch render. workers <= 0 means one per CPU.
func NewDispatcher(s *Session, orbit fractal.Orbit, colorize Colorizer, seeds []complex128, workers int) *Dispatcher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Dispatcher{
		session:  s,
		orbit:    orbit,
		colorize: colorize,
		seeds:    seeds,
		workers:  workers,
		pool:     newBufPool(orbit.Limit),
	}
}

// Total is the number of seeds in the grid.
func (d *Dispatcher) Total() int { return len(d.seeds) }

// Done is the number of completed seeds; safe to read from any goroutine
// while Run is in flight.
func (d *Dispatcher) Done() int64 { return d.done.Load() }

// Finished reports whether every seed has been rendered.
func (d *Dispatcher) Finished() bool { return d.done.Load() >= int64(len(d.seeds)) }

// Reset rewinds the progress counter so the grid can be rendered again.
// Callers must not reset while a Run is in flight.
func (d *Dispatcher) Reset() { d.done.Store(0) }

// Run blocks until every seed completes or ctx is canceled. Workers check
// for cancellation between seeds, never mid-trajectory.
func (d *Dispatcher) Run(ctx context.Context) error {
	n := len(d.seeds)
	if n == 0 {
		return nil
	}

	workers := d.workers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			buf := d.pool.Get()
			defer d.pool.Put(buf)

			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				d.renderSeed(d.seeds[i], buf)
				d.done.Add(1)
			}
		}(start, end)
	}

	wg.Wait()
	return ctx.Err()
}

// renderSeed iterates one trajectory into the local buffer and commits it to
// the canvas in a single critical section.
func (d *Dispatcher) renderSeed(c complex128, buf *workBuf) {
	buf.zs = d.orbit.Trace(c, buf.zs[:0])

	pts := buf.pts[:0]
	if d.session.Mode() == canvas.ModeDensity {
		for _, z := range buf.zs {
			pts = append(pts, canvas.Point{Z: z})
		}
	} else {
		for _, z := range buf.zs {
			pts = append(pts, canvas.Point{Z: z, Color: d.colorize(c, z)})
		}
	}
	buf.pts = pts

	d.session.Plot(pts)
}
