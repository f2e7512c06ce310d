package app_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"j4k.co/noisegl/app"
	"j4k.co/noisegl/testgfx"
)

func TestParseShaderKind(t *testing.T) {
	for _, k := range app.ShaderKinds() {
		got, err := app.ParseShaderKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	k, err := app.ParseShaderKind("worley-noise")
	require.NoError(t, err)
	assert.Equal(t, app.Worley, k)
	k, err = app.ParseShaderKind("fbm")
	require.NoError(t, err)
	assert.Equal(t, app.FBM, k)

	_, err = app.ParseShaderKind("phong")
	assert.Error(t, err)
}

func TestLoadSources(t *testing.T) {
	fsys := fstest.MapFS{}
	for _, stem := range []string{"perlin-noise", "lambert", "fbm", "worley-noise"} {
		fsys[stem+"-vert.glsl"] = &fstest.MapFile{Data: []byte("vert " + stem)}
		fsys[stem+"-frag.glsl"] = &fstest.MapFile{Data: []byte("frag " + stem)}
	}
	src, err := app.LoadSources(fsys)
	require.NoError(t, err)
	assert.Equal(t, "vert lambert", string(src.Vertex[app.Lambert]))
	assert.Equal(t, "frag worley-noise", string(src.Fragment[app.Worley]))

	delete(fsys, "fbm-frag.glsl")
	_, err = app.LoadSources(fsys)
	assert.ErrorIs(t, err, app.ErrNoSource)
}

func TestLibraryLinksEveryPair(t *testing.T) {
	ctx := testgfx.New()
	lib, err := app.NewLibrary(ctx, testSources())
	require.NoError(t, err)
	assert.Equal(t, 16, ctx.LivePrograms())
	assert.Same(t, lib.Program(app.FBM, app.Worley), lib.Program(app.FBM, app.Worley))
	assert.NotSame(t, lib.Program(app.FBM, app.Worley), lib.Program(app.Worley, app.FBM))
	assert.Nil(t, lib.Program(app.ShaderKind(9), app.Perlin))

	lib.Release()
	assert.Zero(t, ctx.LivePrograms())
}

func TestLibraryNeedsEverySource(t *testing.T) {
	src := testSources()
	src.Vertex[app.Lambert] = ""
	_, err := app.NewLibrary(testgfx.New(), src)
	assert.ErrorIs(t, err, app.ErrNoSource)
}

func TestLibraryLinkFailure(t *testing.T) {
	ctx := testgfx.New()
	ctx.FailLink = true
	_, err := app.NewLibrary(ctx, testSources())
	require.Error(t, err)
	assert.Zero(t, ctx.LivePrograms())
	assert.Zero(t, ctx.LiveShaders())
}
