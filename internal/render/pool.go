package render

import (
	"sync"

	"github.com/san-kum/pixi/internal/canvas"
)

// workBuf is one worker's per-seed scratch space: the raw iterates and the
// colored points built from them. Pooling keeps the hot loop free of
// allocations across millions of seeds.
type workBuf struct {
	zs  []complex128
	pts []canvas.Point
}

type bufPool struct {
	pool sync.Pool
}

func newBufPool(limit int) *bufPool {
	return &bufPool{pool: sync.Pool{
		New: func() interface{} {
			return &workBuf{
				zs:  make([]complex128, 0, limit),
				pts: make([]canvas.Point, 0, limit),
			}
		},
	}}
}

func (p *bufPool) Get() *workBuf {
	return p.pool.Get().(*workBuf)
}

func (p *bufPool) Put(b *workBuf) {
	b.zs = b.zs[:0]
	b.pts = b.pts[:0]
	p.pool.Put(b)
}
