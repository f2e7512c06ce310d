package geometry_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"j4k.co/noisegl/geometry"
	"j4k.co/noisegl/gfx"
)

func floatAt(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
}

func TestBuilderInterleaves(t *testing.T) {
	bdr := geometry.NewBuilder(gfx.VertexPosition | gfx.VertexNormal)
	bdr.Position(1, 2, 3).Normal(0, 0, 1)
	bdr.Position(4, 5, 6)

	require.Equal(t, 2, bdr.VertexCount())
	data := bdr.Bytes()
	require.Len(t, data, 2*24)

	want := []float32{1, 2, 3, 0, 0, 1, 4, 5, 6, 0, 0, 1}
	for i, w := range want {
		assert.Equal(t, w, floatAt(data, i), "float %d", i)
	}
}

func TestBuilderCarriesColor(t *testing.T) {
	bdr := geometry.NewBuilder(gfx.VertexPosition | gfx.VertexColor)
	bdr.Position(0, 0, 0).Color(10, 20, 30, 40)
	bdr.Position(1, 0, 0)
	data := bdr.Bytes()
	stride := (gfx.VertexPosition | gfx.VertexColor).Stride()
	assert.Equal(t, []byte{10, 20, 30, 40}, data[stride+12:stride+16])
}

func TestBuilderRejectsForeignAttribute(t *testing.T) {
	bdr := geometry.NewBuilder(gfx.VertexPosition)
	assert.PanicsWithValue(t, gfx.ErrBadVertexFormat, func() {
		bdr.Position(0, 0, 0).Normal(0, 1, 0)
	})
}

func TestIndicesAreRelative(t *testing.T) {
	var b geometry.IndexBuilder
	b.Indices(0, 1, 2, 0, 2, 3)
	b.Indices(0, 1, 2)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6}, b.IndexSlice())

	b.SetIndices(5, 1)
	b.Indices(0)
	assert.Equal(t, []uint32{5, 1, 6}, b.IndexSlice())

	b.Clear()
	assert.Zero(t, b.IndexCount())
}
