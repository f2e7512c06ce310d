package gfx

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrCompile      = errors.New("gfx: shader compile failed")
	ErrLink         = errors.New("gfx: program link failed")
	ErrMissingStage = errors.New("gfx: program needs exactly one vertex and one fragment shader")
)

// ShaderSource is GLSL text tagged with the stage it belongs to. The stage
// comes from the Go type, so a vertex source can't be compiled as a
// fragment shader by accident.
type ShaderSource interface {
	Stage() ShaderStage
	Source() string
}

type VertexShader string
type FragmentShader string

func (v VertexShader) Stage() ShaderStage {
	return VertexStage
}

func (v VertexShader) Source() string {
	return string(v)
}

func (f FragmentShader) Stage() ShaderStage {
	return FragmentStage
}

func (f FragmentShader) Source() string {
	return string(f)
}

// Shader is a single compiled stage.
type Shader struct {
	ctx    Context
	handle uint32
	stage  ShaderStage
}

// CompileShader compiles src for its stage. The returned error wraps
// ErrCompile and carries the driver's info log.
func CompileShader(ctx Context, src ShaderSource) (*Shader, error) {
	h, err := ctx.CompileShader(src.Stage(), src.Source())
	if err != nil {
		return nil, fmt.Errorf("%w: %s shader: %v", ErrCompile, src.Stage(), err)
	}
	return &Shader{ctx: ctx, handle: h, stage: src.Stage()}, nil
}

func (s *Shader) Stage() ShaderStage {
	return s.stage
}

func (s *Shader) Release() {
	if s.handle != 0 {
		s.ctx.DeleteShader(s.handle)
		s.handle = 0
	}
}

// Program is a linked vertex+fragment pair along with its attribute and
// uniform bindings.
type Program struct {
	ctx          Context
	prog         uint32
	vertexAttrs  VertexAttributes
	vertexFormat VertexFormat

	uniforms map[string]int32
	attribs  map[VertexFormat]int32

	indexed    bool
	drawCount  int
	prevArrays []int32
}

// LinkProgram links one vertex and one fragment stage. The stages stay
// valid and may be linked into other programs.
func LinkProgram(ctx Context, attrs VertexAttributes, stages ...*Shader) (*Program, error) {
	var nvert, nfrag int
	handles := make([]uint32, len(stages))
	for i, s := range stages {
		switch s.stage {
		case VertexStage:
			nvert++
		case FragmentStage:
			nfrag++
		}
		handles[i] = s.handle
	}
	if nvert != 1 || nfrag != 1 {
		return nil, ErrMissingStage
	}
	prog, err := ctx.LinkProgram(handles...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLink, err)
	}
	return &Program{
		ctx:          ctx,
		prog:         prog,
		vertexAttrs:  attrs.clone(),
		vertexFormat: attrs.Format(),
		uniforms:     make(map[string]int32),
		attribs:      make(map[VertexFormat]int32),
	}, nil
}

// BuildProgram compiles srcs, links them and frees the shader objects.
func BuildProgram(ctx Context, attrs VertexAttributes, srcs ...ShaderSource) (*Program, error) {
	ss := make([]*Shader, 0, len(srcs))
	// No longer need shader objects with a fully built program.
	defer func() {
		for _, s := range ss {
			s.Release()
		}
	}()
	for _, src := range srcs {
		s, err := CompileShader(ctx, src)
		if err != nil {
			return nil, err
		}
		ss = append(ss, s)
	}
	return LinkProgram(ctx, attrs, ss...)
}

// VertexFormat is the set of attributes the program reads.
func (p *Program) VertexFormat() VertexFormat {
	return p.vertexFormat
}

func (p *Program) Use() {
	p.ctx.UseProgram(p.prog)
}

func (p *Program) Release() {
	if p.prog != 0 {
		p.ctx.DeleteProgram(p.prog)
		p.prog = 0
	}
}

func (p *Program) uniform(name string) int32 {
	loc, ok := p.uniforms[name]
	if !ok {
		loc = p.ctx.UniformLocation(p.prog, name)
		p.uniforms[name] = loc
	}
	return loc
}

func (p *Program) attrib(v VertexFormat) int32 {
	loc, ok := p.attribs[v]
	if !ok {
		loc = -1
		if name, named := p.vertexAttrs[v]; named {
			loc = p.ctx.AttribLocation(p.prog, name)
		}
		p.attribs[v] = loc
	}
	return loc
}

// SetUniforms takes struct fields with "uniform" tag and assigns their values
// to the shader's uniform variables. Embedded structs are walked; uniforms the
// program doesn't declare are skipped.
func (p *Program) SetUniforms(data interface{}) {
	p.setUniforms(reflect.Indirect(reflect.ValueOf(data)))
}

func (p *Program) setUniforms(val reflect.Value) {
	if val.Kind() != reflect.Struct {
		return
	}
	typ := val.Type()
	n := val.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		v := val.Field(i)
		if f.Anonymous && v.Kind() == reflect.Struct {
			p.setUniforms(v)
			continue
		}
		name := f.Tag.Get("uniform")
		if name == "" || !f.IsExported() {
			continue
		}
		loc := p.uniform(name)
		if loc < 0 {
			continue
		}
		switch u := v.Interface().(type) {
		case float32:
			p.ctx.Uniform1f(loc, u)
		case mgl32.Vec3:
			p.ctx.Uniform3f(loc, u)
		case mgl32.Vec4:
			p.ctx.Uniform4f(loc, u)
		case mgl32.Mat4:
			p.ctx.UniformMatrix4f(loc, u)
		case [16]float32:
			p.ctx.UniformMatrix4f(loc, u)
		}
	}
}

// SetGeometry sets the vertex attributes and binds the index buffer. The
// geometry has to provide every attribute the program reads.
func (p *Program) SetGeometry(geom Drawable) error {
	vertices := geom.Vertices()
	format := vertices.Format()
	if p.vertexFormat&^format != 0 {
		return ErrBadVertexFormat
	}
	vertices.bind()

	for _, a := range p.prevArrays {
		p.ctx.DisableVertexAttrib(a)
	}
	p.prevArrays = p.prevArrays[:0]

	var i VertexFormat
	offset := 0
	stride := format.Stride()
	for i = 1; i <= MaxVertexFormat; i <<= 1 {
		if format&i == 0 {
			continue
		}
		if attrib := p.attrib(i); attrib >= 0 {
			p.ctx.EnableVertexAttrib(attrib)
			if i.attribNormalized() {
				p.ctx.VertexAttribBytes(attrib, i.AttribElems(), stride, offset)
			} else {
				p.ctx.VertexAttribFloat(attrib, i.AttribElems(), stride, offset)
			}
			p.prevArrays = append(p.prevArrays, attrib)
		}
		offset += i.AttribBytes()
	}

	indices := geom.Indices()
	p.indexed = indices.Valid()
	if p.indexed {
		p.drawCount = indices.Count()
		indices.bind()
	} else {
		p.drawCount = vertices.Count()
	}
	return nil
}

// Draw issues the draw call for the previously set uniforms and geometry.
func (p *Program) Draw() {
	if p.drawCount == 0 {
		return
	}
	if p.indexed {
		p.ctx.DrawElements(p.drawCount)
	} else {
		p.ctx.DrawArrays(p.drawCount)
	}
}
