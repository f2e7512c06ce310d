// Package testgfx provides a recording gfx.Context for tests that run
// without a GPU.
package testgfx

import (
	"errors"
	"fmt"
	"strings"

	"j4k.co/noisegl/gfx"
)

// Draw is one recorded draw call.
type Draw struct {
	Program uint32
	Indexed bool
	Count   int
	// Uniforms is a snapshot of the program's uniform values at draw time.
	Uniforms map[string]interface{}
}

// Context records the calls made through it. The zero value is not usable;
// call New.
type Context struct {
	// FailCompile makes CompileShader fail for any source containing it.
	FailCompile string
	// FailLink makes every LinkProgram call fail.
	FailLink bool

	ClearColorValue [4]float32
	ViewportValue   [4]int
	DepthTest       bool
	Blend           bool
	Clears          int
	Draws           []Draw

	next     uint32
	buffers  map[uint32][]byte
	bound    map[gfx.BufferTarget]uint32
	shaders  map[uint32]gfx.ShaderStage
	sources  map[uint32]string
	programs map[uint32][]uint32
	current  uint32
	uniforms map[uint32]map[string]interface{}
	enabled  map[int32]bool
	names    []string

	Deleted []uint32
}

func New() *Context {
	return &Context{
		buffers:  make(map[uint32][]byte),
		bound:    make(map[gfx.BufferTarget]uint32),
		shaders:  make(map[uint32]gfx.ShaderStage),
		sources:  make(map[uint32]string),
		programs: make(map[uint32][]uint32),
		uniforms: make(map[uint32]map[string]interface{}),
		enabled:  make(map[int32]bool),
	}
}

func (c *Context) handle() uint32 {
	c.next++
	return c.next
}

func (c *Context) ClearColor(r, g, b, a float32) { c.ClearColorValue = [4]float32{r, g, b, a} }
func (c *Context) Clear()                         { c.Clears++ }
func (c *Context) EnableDepthTest()               { c.DepthTest = true }
func (c *Context) EnableBlend()                   { c.Blend = true }

func (c *Context) Viewport(x, y, width, height int) {
	c.ViewportValue = [4]int{x, y, width, height}
}

func (c *Context) CreateBuffer() uint32 {
	h := c.handle()
	c.buffers[h] = nil
	return h
}

func (c *Context) DeleteBuffers(bufs ...uint32) {
	for _, b := range bufs {
		delete(c.buffers, b)
		c.Deleted = append(c.Deleted, b)
	}
}

// LiveBuffers is the number of buffers created and not yet deleted.
func (c *Context) LiveBuffers() int {
	return len(c.buffers)
}

// BufferBytes returns the data last uploaded to buf.
func (c *Context) BufferBytes(buf uint32) []byte {
	return c.buffers[buf]
}

func (c *Context) BindBuffer(target gfx.BufferTarget, buf uint32) {
	c.bound[target] = buf
}

func (c *Context) BufferData(target gfx.BufferTarget, data []byte, usage gfx.Usage) {
	b := c.bound[target]
	if _, ok := c.buffers[b]; !ok {
		panic(fmt.Sprintf("testgfx: BufferData on unbound or deleted %s buffer %d", target, b))
	}
	c.buffers[b] = append([]byte(nil), data...)
}

func (c *Context) CompileShader(stage gfx.ShaderStage, source string) (uint32, error) {
	if c.FailCompile != "" && strings.Contains(source, c.FailCompile) {
		return 0, errors.New("0:1(1): error: syntax error")
	}
	h := c.handle()
	c.shaders[h] = stage
	c.sources[h] = source
	return h, nil
}

func (c *Context) DeleteShader(shader uint32) {
	delete(c.shaders, shader)
}

// LiveShaders is the number of shader objects not yet deleted.
func (c *Context) LiveShaders() int {
	return len(c.shaders)
}

func (c *Context) LinkProgram(shaders ...uint32) (uint32, error) {
	if c.FailLink {
		return 0, errors.New("error: linking with uncompiled shader")
	}
	for _, s := range shaders {
		if _, ok := c.shaders[s]; !ok {
			return 0, fmt.Errorf("testgfx: shader %d does not exist", s)
		}
	}
	h := c.handle()
	c.programs[h] = append([]uint32(nil), shaders...)
	c.uniforms[h] = make(map[string]interface{})
	return h, nil
}

func (c *Context) DeleteProgram(prog uint32) {
	delete(c.programs, prog)
	delete(c.uniforms, prog)
}

// LivePrograms is the number of linked programs not yet deleted.
func (c *Context) LivePrograms() int {
	return len(c.programs)
}

// ProgramSources returns the source of each shader linked into prog, in
// link order. Sources stay known after the shader objects are deleted.
func (c *Context) ProgramSources(prog uint32) []string {
	var srcs []string
	for _, s := range c.programs[prog] {
		srcs = append(srcs, c.sources[s])
	}
	return srcs
}

// ProgramStages returns the stages linked into prog, in link order.
func (c *Context) ProgramStages(prog uint32) []gfx.ShaderStage {
	var stages []gfx.ShaderStage
	for _, s := range c.programs[prog] {
		stages = append(stages, c.shaders[s])
	}
	return stages
}

func (c *Context) UseProgram(prog uint32) { c.current = prog }

// CurrentProgram is the program last passed to UseProgram.
func (c *Context) CurrentProgram() uint32 { return c.current }

// Attribute locations are fixed so tests can predict them.
var attribLocations = map[string]int32{
	"vs_Pos": 0,
	"vs_Nor": 1,
	"vs_Col": 2,
	"vs_UV":  3,
}

func (c *Context) AttribLocation(prog uint32, name string) int32 {
	if loc, ok := attribLocations[name]; ok {
		return loc
	}
	return -1
}

// UniformLocation hands out one location per distinct name so values can be
// recorded by name.
func (c *Context) UniformLocation(prog uint32, name string) int32 {
	for i, n := range c.names {
		if n == name {
			return int32(i)
		}
	}
	c.names = append(c.names, name)
	return int32(len(c.names) - 1)
}

func (c *Context) EnableVertexAttrib(loc int32)  { c.enabled[loc] = true }
func (c *Context) DisableVertexAttrib(loc int32) { delete(c.enabled, loc) }

// EnabledAttrib reports whether loc is currently enabled.
func (c *Context) EnabledAttrib(loc int32) bool { return c.enabled[loc] }

func (c *Context) VertexAttribFloat(loc int32, size, stride, offset int) {}
func (c *Context) VertexAttribBytes(loc int32, size, stride, offset int) {}

func (c *Context) setUniform(loc int32, v interface{}) {
	if c.current == 0 {
		panic("testgfx: uniform set with no program in use")
	}
	c.uniforms[c.current][c.names[loc]] = v
}

func (c *Context) Uniform1f(loc int32, v float32)            { c.setUniform(loc, v) }
func (c *Context) Uniform3f(loc int32, v [3]float32)         { c.setUniform(loc, v) }
func (c *Context) Uniform4f(loc int32, v [4]float32)         { c.setUniform(loc, v) }
func (c *Context) UniformMatrix4f(loc int32, m [16]float32) { c.setUniform(loc, m) }

func (c *Context) draw(indexed bool, count int) {
	snap := make(map[string]interface{}, len(c.uniforms[c.current]))
	for k, v := range c.uniforms[c.current] {
		snap[k] = v
	}
	c.Draws = append(c.Draws, Draw{
		Program:  c.current,
		Indexed:  indexed,
		Count:    count,
		Uniforms: snap,
	})
}

func (c *Context) DrawElements(count int) { c.draw(true, count) }
func (c *Context) DrawArrays(count int)   { c.draw(false, count) }

var _ gfx.Context = (*Context)(nil)
