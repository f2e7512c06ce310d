package gfx

import (
	"sync"
)

// garbage holds buffer handles whose owners have been discarded. Deleting
// them has to happen on the context's thread, so it is deferred to a
// checkpoint inside the frame.
type garbage struct {
	sync.Mutex
	buffers []uint32
}

func (g *garbage) addGeometry(geom *Geometry) {
	bufs := geom.buffers()
	geom.VertexBuffer.buf = 0
	geom.IndexBuffer.buf = 0
	g.Lock()
	g.buffers = append(g.buffers, bufs...)
	g.Unlock()
}

func (g *garbage) pending() int {
	g.Lock()
	defer g.Unlock()
	return len(g.buffers)
}

// release deletes everything queued so far.
func (g *garbage) release(ctx Context) {
	g.Lock()
	defer g.Unlock()

	if len(g.buffers) > 0 {
		ctx.DeleteBuffers(g.buffers...)
		g.buffers = nil
	}
}
