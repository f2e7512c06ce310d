package gfx_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"j4k.co/noisegl/gfx"
	"j4k.co/noisegl/testgfx"
)

func newScene(t *testing.T) (*testgfx.Context, *gfx.Renderer, *gfx.Program, *gfx.Camera) {
	t.Helper()
	ctx := testgfx.New()
	prog, err := gfx.BuildProgram(ctx, gfx.DefaultVertexAttributes, testVert, testFrag)
	require.NoError(t, err)
	cam := gfx.NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	return ctx, gfx.NewRenderer(ctx), prog, cam
}

func TestRendererState(t *testing.T) {
	ctx, r, _, _ := newScene(t)
	r.SetClearColor(0.2, 0.2, 0.2, 1)
	r.EnableDepthTest()
	r.SetSize(800, 600)
	r.Clear()

	assert.Equal(t, [4]float32{0.2, 0.2, 0.2, 1}, ctx.ClearColorValue)
	assert.True(t, ctx.DepthTest)
	assert.False(t, ctx.Blend, "depth test alone leaves blending off")
	r.EnableBlend()
	assert.True(t, ctx.Blend)
	assert.Equal(t, [4]int{0, 0, 800, 600}, ctx.ViewportValue)
	assert.Equal(t, 1, ctx.Clears)
	w, h := r.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestRenderDrawsInOrder(t *testing.T) {
	ctx, r, prog, cam := newScene(t)
	a, err := gfx.NewGeometry(ctx, squareBuilder(), gfx.StaticDraw)
	require.NoError(t, err)
	b, err := gfx.NewGeometry(ctx, squareBuilder(), gfx.StaticDraw)
	require.NoError(t, err)
	a.SetModel(mgl32.Translate3D(-1, 0, 0))
	b.SetModel(mgl32.Translate3D(1, 0, 0))

	color := mgl32.Vec4{1, 0, 0, 0.5}
	r.SetTime(3)
	r.Render(cam, prog, []gfx.Drawable{a, b}, color)

	require.Len(t, ctx.Draws, 2)
	assert.Equal(t, [16]float32(mgl32.Translate3D(-1, 0, 0)), ctx.Draws[0].Uniforms["u_Model"])
	assert.Equal(t, [16]float32(mgl32.Translate3D(1, 0, 0)), ctx.Draws[1].Uniforms["u_Model"])
	for _, d := range ctx.Draws {
		assert.Equal(t, [4]float32(color), d.Uniforms["u_Color"])
		assert.Equal(t, float32(3), d.Uniforms["u_Time"])
		assert.Equal(t, [16]float32(cam.ViewProjection()), d.Uniforms["u_ViewProj"])
	}
}

func TestRenderSkipsIncompatibleGeometry(t *testing.T) {
	ctx, r, prog, cam := newScene(t)
	bad, err := gfx.NewGeometry(ctx, positionOnly(), gfx.StaticDraw)
	require.NoError(t, err)
	good, err := gfx.NewGeometry(ctx, squareBuilder(), gfx.StaticDraw)
	require.NoError(t, err)

	r.Render(cam, prog, []gfx.Drawable{bad, good}, mgl32.Vec4{1, 1, 1, 1})
	assert.Len(t, ctx.Draws, 1)
}

func TestDiscardReleasesAtNextRender(t *testing.T) {
	ctx, r, prog, cam := newScene(t)
	old, err := gfx.NewGeometry(ctx, squareBuilder(), gfx.StaticDraw)
	require.NoError(t, err)
	require.Equal(t, 2, ctx.LiveBuffers())

	r.Discard(old)
	assert.Equal(t, 2, r.Pending())
	assert.Equal(t, 2, ctx.LiveBuffers(), "deletion waits for the render checkpoint")

	r.Render(cam, prog, nil, mgl32.Vec4{})
	assert.Zero(t, r.Pending())
	assert.Zero(t, ctx.LiveBuffers())

	r.Discard(nil)
	assert.Zero(t, r.Pending())
}
