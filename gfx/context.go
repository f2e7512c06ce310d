package gfx

// Context is the slice of the graphics API the package draws through. All
// calls must be made from the thread that owns the underlying context.
// Object handles are opaque non-zero integers; zero means "none".
//
// internal/glcore implements it with OpenGL 4.1 core; testgfx provides a
// recording fake.
type Context interface {
	ClearColor(r, g, b, a float32)
	Clear()
	Viewport(x, y, width, height int)
	EnableDepthTest()
	EnableBlend()

	CreateBuffer() uint32
	DeleteBuffers(bufs ...uint32)
	BindBuffer(target BufferTarget, buf uint32)
	// BufferData replaces the contents of the buffer bound to target.
	BufferData(target BufferTarget, data []byte, usage Usage)

	// CompileShader returns the shader handle, or an error carrying the
	// driver's info log.
	CompileShader(stage ShaderStage, source string) (uint32, error)
	DeleteShader(shader uint32)
	// LinkProgram links the shaders into a new program and detaches them.
	LinkProgram(shaders ...uint32) (uint32, error)
	DeleteProgram(prog uint32)
	UseProgram(prog uint32)

	AttribLocation(prog uint32, name string) int32
	UniformLocation(prog uint32, name string) int32
	EnableVertexAttrib(loc int32)
	DisableVertexAttrib(loc int32)
	// VertexAttribFloat points loc at size float32s at byte offset within
	// each stride-sized vertex of the bound array buffer.
	VertexAttribFloat(loc int32, size, stride, offset int)
	// VertexAttribBytes is like VertexAttribFloat for normalized uint8 data.
	VertexAttribBytes(loc int32, size, stride, offset int)

	Uniform1f(loc int32, v float32)
	Uniform3f(loc int32, v [3]float32)
	Uniform4f(loc int32, v [4]float32)
	UniformMatrix4f(loc int32, m [16]float32)

	// DrawElements draws count uint32 indices from the bound element buffer
	// as triangles.
	DrawElements(count int)
	DrawArrays(count int)
}
