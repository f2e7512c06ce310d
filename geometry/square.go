package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Square builds a 2x2 quad in the XY plane around center, facing +Z.
func Square(center mgl32.Vec3) *Builder {
	x, y, z := center.X(), center.Y(), center.Z()
	bdr := NewBuilder(ShapeFormat)
	bdr.Position(x-1, y-1, z).Normal(0, 0, 1)
	bdr.Position(x+1, y-1, z)
	bdr.Position(x+1, y+1, z)
	bdr.Position(x-1, y+1, z)
	bdr.Indices(0, 1, 2, 0, 2, 3)
	return bdr
}
