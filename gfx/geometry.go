package gfx

import (
	"encoding/binary"
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

type Usage uint16

const (
	StaticDraw Usage = iota
	DynamicDraw
	StreamDraw
)

type VertexFormat uint32

const (
	VertexPosition VertexFormat = 1 << iota
	VertexColor
	VertexNormal
	VertexTexcoord
	MaxVertexFormat = VertexTexcoord
)

// AttribBytes gives the byte size of a specific piece of vertex data
func (v VertexFormat) AttribBytes() int {
	const fsize = 4
	switch v {
	case VertexColor:
		// RGBA, 8-bit channels
		return 4
	case VertexTexcoord:
		return 2 * fsize
	default:
		return 3 * fsize
	}
}

// AttribElems gives the number of elements for a specific piece of vertex data
func (v VertexFormat) AttribElems() int {
	switch v {
	case VertexColor:
		return 4
	case VertexTexcoord:
		return 2
	default:
		return 3
	}
}

// attribNormalized reports whether the attribute is stored as unsigned bytes
// that the shader sees normalized to [0.0-1.0].
func (v VertexFormat) attribNormalized() bool {
	return v == VertexColor
}

// Stride gives the stride in bytes for a vertex buffer.
func (v VertexFormat) Stride() int {
	var i VertexFormat
	stride := 0
	for i = 1; i <= MaxVertexFormat; i <<= 1 {
		if v&i != 0 {
			stride += i.AttribBytes()
		}
	}
	return stride
}

func (v VertexFormat) Count() int {
	var i VertexFormat
	count := 0
	for i = 1; i <= MaxVertexFormat; i <<= 1 {
		if v&i != 0 {
			count++
		}
	}
	return count
}

// VertexAttributes maps shader attributes by name to specific vertex data,
// and as a whole a complete VertexFormat for geometry.
type VertexAttributes map[VertexFormat]string

// DefaultVertexAttributes names the attributes every bundled shader declares.
var DefaultVertexAttributes = VertexAttributes{
	VertexPosition: "vs_Pos",
	VertexNormal:   "vs_Nor",
}

// Format returns a VertexFormat bitmask determined by the mapped attributes.
func (v VertexAttributes) Format() VertexFormat {
	var mask VertexFormat
	for k := range v {
		mask |= k
	}
	return mask
}

func (v VertexAttributes) clone() VertexAttributes {
	v2 := make(VertexAttributes, len(v))
	for k, v := range v {
		v2[k] = v
	}
	return v2
}

var ErrBadVertexFormat = errors.New("gfx: bad vertex format")

// VertexBuffer represents interleaved vertices for a VertexFormat set.
type VertexBuffer struct {
	ctx    Context
	buf    uint32
	count  int
	format VertexFormat
}

func (b *VertexBuffer) bind() {
	b.ctx.BindBuffer(ArrayBuffer, b.buf)
}

func (b *VertexBuffer) Count() int {
	return b.count
}

func (b *VertexBuffer) Format() VertexFormat {
	return b.format
}

// SetVertices uploads src, which must hold whole vertices of the buffer's
// format.
func (b *VertexBuffer) SetVertices(src []byte, usage Usage) error {
	stride := b.format.Stride()
	if stride == 0 || len(src)%stride != 0 {
		return ErrBadVertexFormat
	}
	b.bind()
	b.ctx.BufferData(ArrayBuffer, src, usage)
	b.count = len(src) / stride
	return nil
}

type IndexBuffer struct {
	ctx   Context
	buf   uint32
	count int
}

func (b *IndexBuffer) bind() {
	b.ctx.BindBuffer(ElementArrayBuffer, b.buf)
}

// Valid reports whether the buffer has been allocated.
func (b *IndexBuffer) Valid() bool {
	return b.buf != 0
}

func (b *IndexBuffer) Count() int {
	return b.count
}

func (b *IndexBuffer) SetIndices(src []uint32, usage Usage) error {
	b.bind()
	data := make([]byte, 4*len(src))
	for i, idx := range src {
		binary.LittleEndian.PutUint32(data[4*i:], idx)
	}
	b.ctx.BufferData(ElementArrayBuffer, data, usage)
	b.count = len(src)
	return nil
}

type VertexData interface {
	VertexCount() int
	VertexFormat() VertexFormat
	CopyVertices(dest *VertexBuffer, usage Usage) error
}

type IndexData interface {
	IndexCount() int
	CopyIndices(dest *IndexBuffer, usage Usage) error
}

// Drawable is anything the Renderer can issue a draw call for.
type Drawable interface {
	Vertices() *VertexBuffer
	Indices() *IndexBuffer
	Model() mgl32.Mat4
}

// Geometry represents a piece of mesh that can be rendered in a single
// draw call. It may or may not contain an index buffer, but always has
// a vertex buffer.
type Geometry struct {
	usage Usage
	model mgl32.Mat4
	VertexBuffer
	IndexBuffer
}

// NewGeometry copies vertices from src as well as indices if IndexData
// is implemented, into newly allocated buffer objects.
func NewGeometry(ctx Context, src VertexData, usage Usage) (*Geometry, error) {
	srcidx, ok := src.(IndexData)
	geom := allocGeom(ctx, usage, ok)
	geom.VertexBuffer.format = src.VertexFormat()
	err := src.CopyVertices(&geom.VertexBuffer, usage)
	if err != nil {
		geom.Release()
		return nil, err
	}
	if ok {
		err := srcidx.CopyIndices(&geom.IndexBuffer, usage)
		if err != nil {
			geom.Release()
			return nil, err
		}
	}
	return geom, nil
}

func allocGeom(ctx Context, usage Usage, hasIndex bool) *Geometry {
	geom := &Geometry{
		usage: usage,
		model: mgl32.Ident4(),
	}
	geom.VertexBuffer.ctx = ctx
	geom.IndexBuffer.ctx = ctx
	geom.VertexBuffer.buf = ctx.CreateBuffer()
	if hasIndex {
		geom.IndexBuffer.buf = ctx.CreateBuffer()
	}
	return geom
}

func (g *Geometry) Vertices() *VertexBuffer {
	return &g.VertexBuffer
}

func (g *Geometry) Indices() *IndexBuffer {
	return &g.IndexBuffer
}

func (g *Geometry) Model() mgl32.Mat4 {
	return g.model
}

func (g *Geometry) SetModel(m mgl32.Mat4) {
	g.model = m
}

// buffers lists the live buffer handles owned by g.
func (g *Geometry) buffers() []uint32 {
	bufs := make([]uint32, 0, 2)
	if g.VertexBuffer.buf != 0 {
		bufs = append(bufs, g.VertexBuffer.buf)
	}
	if g.IndexBuffer.buf != 0 {
		bufs = append(bufs, g.IndexBuffer.buf)
	}
	return bufs
}

// Release deletes the GPU buffers immediately. It must run on the context's
// thread; see Renderer.Discard for deferring it to the next frame.
func (g *Geometry) Release() {
	if bufs := g.buffers(); len(bufs) > 0 {
		g.VertexBuffer.ctx.DeleteBuffers(bufs...)
	}
	g.VertexBuffer.buf = 0
	g.IndexBuffer.buf = 0
}

// CopyFrom copies vertices from src as well as indices if IndexData
// is implemented.
func (g *Geometry) CopyFrom(src VertexData) error {
	if src.VertexFormat() != g.VertexBuffer.format {
		return ErrBadVertexFormat
	}
	err := src.CopyVertices(&g.VertexBuffer, g.usage)
	if err != nil {
		return err
	}
	if srcidx, ok := src.(IndexData); ok && g.IndexBuffer.Valid() {
		err := srcidx.CopyIndices(&g.IndexBuffer, g.usage)
		if err != nil {
			return err
		}
	}
	return nil
}
