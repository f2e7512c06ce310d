package gfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

// drawUniforms is what every bundled shader reads per draw call.
type drawUniforms struct {
	Model      mgl32.Mat4 `uniform:"u_Model"`
	ModelInvTr mgl32.Mat4 `uniform:"u_ModelInvTr"`
	ViewProj   mgl32.Mat4 `uniform:"u_ViewProj"`
	Color      mgl32.Vec4 `uniform:"u_Color"`
	Time       float32    `uniform:"u_Time"`
}

// Renderer clears the frame and draws lists of geometry with one program.
type Renderer struct {
	ctx    Context
	width  int
	height int
	time   float32
	trash  garbage
}

func NewRenderer(ctx Context) *Renderer {
	return &Renderer{ctx: ctx}
}

func (r *Renderer) SetClearColor(red, green, blue, alpha float32) {
	r.ctx.ClearColor(red, green, blue, alpha)
}

func (r *Renderer) EnableDepthTest() {
	r.ctx.EnableDepthTest()
}

// EnableBlend blends fragments by their alpha, so u_Color's alpha shows.
func (r *Renderer) EnableBlend() {
	r.ctx.EnableBlend()
}

func (r *Renderer) Clear() {
	r.ctx.Clear()
}

// SetSize sets the viewport to cover width x height pixels.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.ctx.Viewport(0, 0, width, height)
}

func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// SetTime sets the u_Time value handed to shaders, in seconds.
func (r *Renderer) SetTime(t float32) {
	r.time = t
}

// Discard queues g's buffers for deletion at the start of the next Render.
// g must not be drawn afterwards.
func (r *Renderer) Discard(g *Geometry) {
	if g == nil {
		return
	}
	r.trash.addGeometry(g)
}

// Pending reports how many discarded buffers are waiting to be released.
func (r *Renderer) Pending() int {
	return r.trash.pending()
}

// Flush deletes every discarded buffer now.
func (r *Renderer) Flush() {
	r.trash.release(r.ctx)
}

// Render draws each drawable in order with prog, tinted by color. A drawable
// whose format doesn't satisfy prog is skipped.
func (r *Renderer) Render(cam *Camera, prog *Program, drawables []Drawable, color mgl32.Vec4) {
	// checkpoint here for releasing unused GL resources
	r.Flush()

	prog.Use()
	u := drawUniforms{
		ViewProj: cam.ViewProjection(),
		Color:    color,
		Time:     r.time,
	}
	for _, d := range drawables {
		u.Model = d.Model()
		u.ModelInvTr = u.Model.Inv().Transpose()
		prog.SetUniforms(&u)
		if err := prog.SetGeometry(d); err != nil {
			continue
		}
		prog.Draw()
	}
}
