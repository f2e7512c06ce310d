package geometry_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"j4k.co/noisegl/geometry"
)

func TestIcosphereCounts(t *testing.T) {
	prev := 0
	for n := 0; n <= 6; n++ {
		bdr, err := geometry.Icosphere(mgl32.Vec3{}, 1, n)
		require.NoError(t, err)
		assert.Equal(t, geometry.IcosphereVertexCount(n), bdr.VertexCount(), "level %d", n)
		assert.Equal(t, geometry.IcosphereIndexCount(n), bdr.IndexCount(), "level %d", n)
		assert.GreaterOrEqual(t, bdr.VertexCount(), prev)
		prev = bdr.VertexCount()
	}
}

func TestIcosphereMaxSubdivisions(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a 655362 vertex mesh")
	}
	n := geometry.MaxSubdivisions
	bdr, err := geometry.Icosphere(mgl32.Vec3{}, 1, n)
	require.NoError(t, err)
	assert.Equal(t, geometry.IcosphereVertexCount(n), bdr.VertexCount())
	assert.Equal(t, geometry.IcosphereIndexCount(n), bdr.IndexCount())
	assert.Equal(t, geometry.IcosphereVertexCount(n)*geometry.ShapeFormat.Stride(), len(bdr.Bytes()))
}

func TestIcosphereVertexCountMonotonic(t *testing.T) {
	for n := 1; n <= geometry.MaxSubdivisions; n++ {
		assert.Greater(t, geometry.IcosphereVertexCount(n), geometry.IcosphereVertexCount(n-1))
	}
	assert.Equal(t, 12, geometry.IcosphereVertexCount(0))
	assert.Equal(t, 655362, geometry.IcosphereVertexCount(8))
}

func TestIcosphereDeterministic(t *testing.T) {
	a, err := geometry.Icosphere(mgl32.Vec3{1, 2, 3}, 2, 3)
	require.NoError(t, err)
	b, err := geometry.Icosphere(mgl32.Vec3{1, 2, 3}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, a.Bytes(), b.Bytes())
	assert.Equal(t, a.IndexSlice(), b.IndexSlice())
}

func TestIcosphereOnSurface(t *testing.T) {
	center := mgl32.Vec3{1, -2, 0.5}
	bdr, err := geometry.Icosphere(center, 3, 2)
	require.NoError(t, err)
	data := bdr.Bytes()
	for v := 0; v < bdr.VertexCount(); v++ {
		p := mgl32.Vec3{floatAt(data, 6*v), floatAt(data, 6*v+1), floatAt(data, 6*v+2)}
		n := mgl32.Vec3{floatAt(data, 6*v+3), floatAt(data, 6*v+4), floatAt(data, 6*v+5)}
		assert.InDelta(t, 3, p.Sub(center).Len(), 1e-4)
		assert.InDelta(t, 1, n.Len(), 1e-4)
	}
	for _, idx := range bdr.IndexSlice() {
		assert.Less(t, int(idx), bdr.VertexCount())
	}
}

func TestIcosphereFailsFast(t *testing.T) {
	_, err := geometry.Icosphere(mgl32.Vec3{}, 1, -1)
	assert.ErrorIs(t, err, geometry.ErrNegativeSubdivisions)

	_, err = geometry.Icosphere(mgl32.Vec3{}, 1, geometry.MaxSubdivisions+1)
	assert.ErrorIs(t, err, geometry.ErrTooManySubdivisions)

	_, err = geometry.Icosphere(mgl32.Vec3{}, 0, 1)
	assert.ErrorIs(t, err, geometry.ErrBadRadius)
}

func TestSquareAndCube(t *testing.T) {
	sq := geometry.Square(mgl32.Vec3{})
	assert.Equal(t, 4, sq.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, sq.IndexSlice())

	cube := geometry.Cube(mgl32.Vec3{0, 0, 1})
	assert.Equal(t, 24, cube.VertexCount())
	assert.Equal(t, 36, cube.IndexCount())
	data := cube.Bytes()
	for v := 0; v < cube.VertexCount(); v++ {
		n := mgl32.Vec3{floatAt(data, 6*v+3), floatAt(data, 6*v+4), floatAt(data, 6*v+5)}
		assert.InDelta(t, 1, n.Len(), 1e-6, "vertex %d", v)
	}
}
