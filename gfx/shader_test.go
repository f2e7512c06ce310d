package gfx_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"j4k.co/noisegl/gfx"
	"j4k.co/noisegl/testgfx"
)

func TestBuildProgramPairsStages(t *testing.T) {
	ctx := testgfx.New()
	prog, err := gfx.BuildProgram(ctx, gfx.DefaultVertexAttributes, testVert, testFrag)
	require.NoError(t, err)
	assert.Equal(t, 1, ctx.LivePrograms())
	assert.Zero(t, ctx.LiveShaders(), "stage objects should be freed after linking")
	assert.Equal(t, gfx.VertexPosition|gfx.VertexNormal, prog.VertexFormat())

	prog.Release()
	assert.Zero(t, ctx.LivePrograms())
}

func TestShaderStageFollowsSourceType(t *testing.T) {
	ctx := testgfx.New()
	vs, err := gfx.CompileShader(ctx, testVert)
	require.NoError(t, err)
	fs, err := gfx.CompileShader(ctx, testFrag)
	require.NoError(t, err)
	assert.Equal(t, gfx.VertexStage, vs.Stage())
	assert.Equal(t, gfx.FragmentStage, fs.Stage())

	// link order doesn't matter, stages are tracked by type
	_, err = gfx.LinkProgram(ctx, gfx.DefaultVertexAttributes, fs, vs)
	require.NoError(t, err)
}

func TestLinkProgramNeedsBothStages(t *testing.T) {
	ctx := testgfx.New()
	vs, err := gfx.CompileShader(ctx, testVert)
	require.NoError(t, err)
	vs2, err := gfx.CompileShader(ctx, testVert)
	require.NoError(t, err)

	_, err = gfx.LinkProgram(ctx, gfx.DefaultVertexAttributes, vs)
	assert.ErrorIs(t, err, gfx.ErrMissingStage)
	_, err = gfx.LinkProgram(ctx, gfx.DefaultVertexAttributes, vs, vs2)
	assert.ErrorIs(t, err, gfx.ErrMissingStage)
}

func TestCompileErrorIsReported(t *testing.T) {
	ctx := testgfx.New()
	ctx.FailCompile = "out_Col"
	_, err := gfx.BuildProgram(ctx, gfx.DefaultVertexAttributes, testVert, testFrag)
	require.ErrorIs(t, err, gfx.ErrCompile)
	assert.Contains(t, err.Error(), "fragment")
	assert.Contains(t, err.Error(), "syntax error")
	assert.Zero(t, ctx.LiveShaders())
}

func TestLinkErrorIsReported(t *testing.T) {
	ctx := testgfx.New()
	ctx.FailLink = true
	_, err := gfx.BuildProgram(ctx, gfx.DefaultVertexAttributes, testVert, testFrag)
	require.ErrorIs(t, err, gfx.ErrLink)
	assert.Zero(t, ctx.LiveShaders())
}

type embedded struct {
	Time float32 `uniform:"u_Time"`
}

type uniforms struct {
	embedded
	Color  mgl32.Vec4 `uniform:"u_Color"`
	Light  mgl32.Vec3 `uniform:"u_Light"`
	Model  mgl32.Mat4 `uniform:"u_Model"`
	hidden float32    `uniform:"u_Hidden"`
	Plain  float32
}

func TestSetUniformsByTag(t *testing.T) {
	ctx := testgfx.New()
	prog, err := gfx.BuildProgram(ctx, gfx.DefaultVertexAttributes, testVert, testFrag)
	require.NoError(t, err)
	prog.Use()
	u := uniforms{
		embedded: embedded{Time: 2.5},
		Color:    mgl32.Vec4{1, 0.5, 0, 1},
		Light:    mgl32.Vec3{0, 1, 0},
		Model:    mgl32.Translate3D(1, 2, 3),
		hidden:   7,
	}
	prog.SetUniforms(&u)
	prog.Draw() // no geometry set: nothing drawn
	assert.Empty(t, ctx.Draws)

	geom, err := gfx.NewGeometry(ctx, squareBuilder(), gfx.StaticDraw)
	require.NoError(t, err)
	require.NoError(t, prog.SetGeometry(geom))
	prog.Draw()
	require.Len(t, ctx.Draws, 1)
	got := ctx.Draws[0].Uniforms
	assert.Equal(t, float32(2.5), got["u_Time"])
	assert.Equal(t, [4]float32{1, 0.5, 0, 1}, got["u_Color"])
	assert.Equal(t, [3]float32{0, 1, 0}, got["u_Light"])
	assert.Equal(t, [16]float32(mgl32.Translate3D(1, 2, 3)), got["u_Model"])
	assert.NotContains(t, got, "u_Hidden")
	assert.True(t, ctx.Draws[0].Indexed)
	assert.Equal(t, 6, ctx.Draws[0].Count)
	assert.True(t, ctx.EnabledAttrib(0))
	assert.True(t, ctx.EnabledAttrib(1))
}

func TestSetGeometryNeedsProgramAttributes(t *testing.T) {
	ctx := testgfx.New()
	prog, err := gfx.BuildProgram(ctx, gfx.DefaultVertexAttributes, testVert, testFrag)
	require.NoError(t, err)

	bdr := positionOnly()
	geom, err := gfx.NewGeometry(ctx, bdr, gfx.StaticDraw)
	require.NoError(t, err)
	assert.ErrorIs(t, prog.SetGeometry(geom), gfx.ErrBadVertexFormat)
}
