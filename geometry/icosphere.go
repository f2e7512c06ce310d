package geometry

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"j4k.co/noisegl/gfx"
)

// MaxSubdivisions bounds Icosphere; level 8 is already 655362 vertices.
const MaxSubdivisions = 8

var (
	ErrNegativeSubdivisions = errors.New("geometry: negative subdivision count")
	ErrTooManySubdivisions  = errors.New("geometry: subdivision count above MaxSubdivisions")
	ErrBadRadius            = errors.New("geometry: radius must be positive")
)

// ShapeFormat is the vertex layout every shape builder emits.
const ShapeFormat = gfx.VertexPosition | gfx.VertexNormal

// IcosphereVertexCount is the number of vertices Icosphere produces for the
// given subdivision level.
func IcosphereVertexCount(subdivisions int) int {
	return 10*(1<<(2*uint(subdivisions))) + 2
}

// IcosphereIndexCount is the number of indices Icosphere produces.
func IcosphereIndexCount(subdivisions int) int {
	return 60 * (1 << (2 * uint(subdivisions)))
}

// Icosphere builds a unit icosahedron refined subdivisions times, scaled by
// radius and moved to center. Midpoints are shared between neighbouring
// triangles so the mesh is watertight.
func Icosphere(center mgl32.Vec3, radius float32, subdivisions int) (*Builder, error) {
	switch {
	case subdivisions < 0:
		return nil, ErrNegativeSubdivisions
	case subdivisions > MaxSubdivisions:
		return nil, ErrTooManySubdivisions
	case radius <= 0:
		return nil, ErrBadRadius
	}

	t := (1 + math32.Sqrt(5)) / 2
	verts := make([]mgl32.Vec3, 0, IcosphereVertexCount(subdivisions))
	for _, v := range []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	} {
		verts = append(verts, v.Normalize())
	}
	tris := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for level := 0; level < subdivisions; level++ {
		mids := make(map[[2]uint32]uint32, len(tris)/2)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{a, b}
			if b < a {
				key = [2]uint32{b, a}
			}
			if m, ok := mids[key]; ok {
				return m
			}
			m := uint32(len(verts))
			verts = append(verts, verts[a].Add(verts[b]).Normalize())
			mids[key] = m
			return m
		}
		next := make([]uint32, 0, 4*len(tris))
		for i := 0; i < len(tris); i += 3 {
			a, b, c := tris[i], tris[i+1], tris[i+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca,
			)
		}
		tris = next
	}

	bdr := NewBuilder(ShapeFormat)
	for _, n := range verts {
		p := center.Add(n.Mul(radius))
		bdr.Position(p.X(), p.Y(), p.Z()).Normal(n.X(), n.Y(), n.Z())
	}
	bdr.SetIndices(tris...)
	return bdr, nil
}
