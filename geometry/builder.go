package geometry

import (
	"encoding/binary"

	"golang.org/x/mobile/exp/f32"

	"j4k.co/noisegl/gfx"
)

// Builder accumulates interleaved vertices and their indices on the CPU. It
// satisfies gfx.VertexData and gfx.IndexData, so it can be handed straight
// to gfx.NewGeometry.
type Builder struct {
	VertexBuilder
	IndexBuilder
}

func NewBuilder(vf gfx.VertexFormat) *Builder {
	return &Builder{
		VertexBuilder: *NewVertexBuilder(vf),
	}
}

func (b *Builder) Clear() {
	b.VertexBuilder.Clear()
	b.IndexBuilder.Clear()
}

type VertexBuilder struct {
	vf       gfx.VertexFormat
	stride   int
	cur      int
	curvf    gfx.VertexFormat // data that's been set on the current vertex
	lastdata map[gfx.VertexFormat]int
	offsets  map[gfx.VertexFormat]int
	verts    []byte
}

func NewVertexBuilder(vf gfx.VertexFormat) *VertexBuilder {
	return &VertexBuilder{
		vf:       vf,
		stride:   vf.Stride(),
		lastdata: make(map[gfx.VertexFormat]int, vf.Count()),
	}
}

// Clear resets buffers to zero length.
func (b *VertexBuilder) Clear() {
	b.lastdata = make(map[gfx.VertexFormat]int, len(b.lastdata))
	b.cur = 0
	b.curvf = 0
	b.verts = b.verts[:0]
}

func (b *VertexBuilder) offset(v gfx.VertexFormat) int {
	if b.vf&v == 0 {
		panic(gfx.ErrBadVertexFormat)
	}
	if b.offsets == nil {
		offs := 0
		b.offsets = map[gfx.VertexFormat]int{}
		for i := gfx.VertexFormat(1); i <= gfx.MaxVertexFormat; i <<= 1 {
			if b.vf&i != 0 {
				b.offsets[i] = offs
				offs += i.AttribBytes()
			}
		}
	}
	return b.offsets[v]
}

func (b *VertexBuilder) next() {
	if len(b.verts) != 0 {
		b.cur += b.stride
	}
	b.curvf = 0
	b.verts = append(b.verts, make([]uint8, b.stride)...)
}

// fillVertex fills the rest of the vertex data using the last set data
// from a previous vertex
func (b *VertexBuilder) fillVertex() {
	if len(b.verts) == 0 {
		return
	}
	for i, offs := range b.lastdata {
		if b.vf&i != 0 && b.curvf&i == 0 {
			data := b.verts[offs : offs+i.AttribBytes()]
			b.set(i, data)
		}
	}
}

func (b *VertexBuilder) set(v gfx.VertexFormat, data []uint8) {
	b.curvf |= v
	offs := b.cur + b.offset(v)
	b.lastdata[v] = offs
	copy(b.verts[offs:offs+len(data)], data)
}

func (b *VertexBuilder) setf(v gfx.VertexFormat, data ...float32) {
	b.set(v, f32.Bytes(binary.LittleEndian, data...))
}

// Position creates a new vertex and sets the vertex position.
func (b *VertexBuilder) Position(x, y, z float32) *VertexBuilder {
	b.fillVertex()
	b.next()
	b.setf(gfx.VertexPosition, x, y, z)
	return b
}

// Color sets the vertex color.
func (b *VertexBuilder) Color(red, green, blue, alpha uint8) *VertexBuilder {
	b.set(gfx.VertexColor, []uint8{red, green, blue, alpha})
	return b
}

// Normal sets the vertex normal.
func (b *VertexBuilder) Normal(x, y, z float32) *VertexBuilder {
	b.setf(gfx.VertexNormal, x, y, z)
	return b
}

// Texcoord sets the vertex texture coordinate.
func (b *VertexBuilder) Texcoord(u, v float32) *VertexBuilder {
	b.setf(gfx.VertexTexcoord, u, v)
	return b
}

// VertexCount returns the number of vertices available.
func (b *VertexBuilder) VertexCount() int {
	if b.stride == 0 {
		return 0
	}
	return len(b.verts) / b.stride
}

// Bytes returns the interleaved vertex data built so far.
func (b *VertexBuilder) Bytes() []byte {
	b.fillVertex()
	return b.verts
}

// CopyVertices uploads the vertices to dest, whose format must match the
// builder's.
func (b *VertexBuilder) CopyVertices(dest *gfx.VertexBuffer, usage gfx.Usage) error {
	b.fillVertex()
	if b.VertexFormat() != dest.Format() {
		return gfx.ErrBadVertexFormat
	}
	return dest.SetVertices(b.verts, usage)
}

func (b *VertexBuilder) VertexFormat() gfx.VertexFormat {
	return b.vf
}

type IndexBuilder struct {
	idxs    []uint32
	nextidx uint32
}

// Indices appends new indices to the buffer that are relative to the maximum index in the buffer.
func (b *IndexBuilder) Indices(idxs ...uint32) *IndexBuilder {
	newnext := b.nextidx
	for i, idx := range idxs {
		idx += b.nextidx
		if idx >= newnext {
			newnext = idx + 1
		}
		idxs[i] = idx
	}
	b.nextidx = newnext
	b.idxs = append(b.idxs, idxs...)
	return b
}

// SetIndices copies idxs into a new buffer. They are absolute vertex
// indices; a following Indices call is relative to their maximum.
func (b *IndexBuilder) SetIndices(idxs ...uint32) {
	b.nextidx = 0
	for _, idx := range idxs {
		if idx >= b.nextidx {
			b.nextidx = idx + 1
		}
	}
	b.idxs = make([]uint32, len(idxs))
	copy(b.idxs, idxs)
}

// IndexCount returns the number of indices available.
func (b *IndexBuilder) IndexCount() int {
	return len(b.idxs)
}

// IndexSlice returns the indices built so far.
func (b *IndexBuilder) IndexSlice() []uint32 {
	return b.idxs
}

// CopyIndices uploads the indices to dest.
func (b *IndexBuilder) CopyIndices(dest *gfx.IndexBuffer, usage gfx.Usage) error {
	return dest.SetIndices(b.idxs, usage)
}

// Clear resets buffers to zero length.
func (b *IndexBuilder) Clear() {
	b.idxs = b.idxs[:0]
	b.nextidx = 0
}
