// Package glcore implements gfx.Context on an OpenGL 4.1 core profile
// context. The context must be current on the calling thread.
package glcore

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"j4k.co/noisegl/gfx"
)

type Context struct {
	vao uint32
}

// New loads the GL function pointers and binds the single vertex array
// object every draw goes through.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glcore: init: %w", err)
	}
	c := &Context{}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	return c, nil
}

// Version is the GL_VERSION string of the driver.
func (c *Context) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Renderer is the GL_RENDERER string of the driver.
func (c *Context) Renderer() string {
	return gl.GoStr(gl.GetString(gl.RENDERER))
}

func (c *Context) Close() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (c *Context) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (c *Context) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *Context) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
}

func (c *Context) EnableBlend() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (c *Context) CreateBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (c *Context) DeleteBuffers(bufs ...uint32) {
	if len(bufs) == 0 {
		return
	}
	gl.DeleteBuffers(int32(len(bufs)), &bufs[0])
}

func target(t gfx.BufferTarget) uint32 {
	if t == gfx.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func usage(u gfx.Usage) uint32 {
	switch u {
	case gfx.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case gfx.StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func (c *Context) BindBuffer(t gfx.BufferTarget, buf uint32) {
	gl.BindBuffer(target(t), buf)
}

func (c *Context) BufferData(t gfx.BufferTarget, data []byte, u gfx.Usage) {
	if len(data) == 0 {
		// set size of buffer and invalidate it
		gl.BufferData(target(t), 0, nil, usage(u))
		return
	}
	gl.BufferData(target(t), len(data), gl.Ptr(data), usage(u))
}

func stage(s gfx.ShaderStage) uint32 {
	if s == gfx.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (c *Context) CompileShader(s gfx.ShaderStage, source string) (uint32, error) {
	shader := gl.CreateShader(stage(s))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", strings.TrimRight(log, "\x00\n"))
	}
	return shader, nil
}

func (c *Context) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (c *Context) LinkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%s", strings.TrimRight(log, "\x00\n"))
	}
	return program, nil
}

func (c *Context) DeleteProgram(prog uint32) { gl.DeleteProgram(prog) }
func (c *Context) UseProgram(prog uint32)    { gl.UseProgram(prog) }

func (c *Context) AttribLocation(prog uint32, name string) int32 {
	return gl.GetAttribLocation(prog, gl.Str(name+"\x00"))
}

func (c *Context) UniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func (c *Context) EnableVertexAttrib(loc int32)  { gl.EnableVertexAttribArray(uint32(loc)) }
func (c *Context) DisableVertexAttrib(loc int32) { gl.DisableVertexAttribArray(uint32(loc)) }

func (c *Context) VertexAttribFloat(loc int32, size, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(loc), int32(size), gl.FLOAT, false, int32(stride), uintptr(offset))
}

func (c *Context) VertexAttribBytes(loc int32, size, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(loc), int32(size), gl.UNSIGNED_BYTE, true, int32(stride), uintptr(offset))
}

func (c *Context) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }

func (c *Context) Uniform3f(loc int32, v [3]float32) { gl.Uniform3fv(loc, 1, &v[0]) }

func (c *Context) Uniform4f(loc int32, v [4]float32) { gl.Uniform4fv(loc, 1, &v[0]) }

func (c *Context) UniformMatrix4f(loc int32, m [16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (c *Context) DrawElements(count int) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, 0)
}

func (c *Context) DrawArrays(count int) {
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
}

var _ gfx.Context = (*Context)(nil)
