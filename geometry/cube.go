package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Cube builds a 2x2x2 cube around center. Each face has its own four
// vertices so normals stay flat.
func Cube(center mgl32.Vec3) *Builder {
	x, y, z := center.X(), center.Y(), center.Z()
	bdr := NewBuilder(ShapeFormat)
	face := func() {
		bdr.Indices(0, 1, 2, 0, 2, 3)
	}
	// +Z
	bdr.Position(x-1, y-1, z+1).Normal(0, 0, 1)
	bdr.Position(x+1, y-1, z+1)
	bdr.Position(x+1, y+1, z+1)
	bdr.Position(x-1, y+1, z+1)
	face()
	// -Z
	bdr.Position(x+1, y-1, z-1).Normal(0, 0, -1)
	bdr.Position(x-1, y-1, z-1)
	bdr.Position(x-1, y+1, z-1)
	bdr.Position(x+1, y+1, z-1)
	face()
	// +Y
	bdr.Position(x-1, y+1, z+1).Normal(0, 1, 0)
	bdr.Position(x+1, y+1, z+1)
	bdr.Position(x+1, y+1, z-1)
	bdr.Position(x-1, y+1, z-1)
	face()
	// -Y
	bdr.Position(x-1, y-1, z-1).Normal(0, -1, 0)
	bdr.Position(x+1, y-1, z-1)
	bdr.Position(x+1, y-1, z+1)
	bdr.Position(x-1, y-1, z+1)
	face()
	// +X
	bdr.Position(x+1, y-1, z+1).Normal(1, 0, 0)
	bdr.Position(x+1, y-1, z-1)
	bdr.Position(x+1, y+1, z-1)
	bdr.Position(x+1, y+1, z+1)
	face()
	// -X
	bdr.Position(x-1, y-1, z-1).Normal(-1, 0, 0)
	bdr.Position(x-1, y-1, z+1)
	bdr.Position(x-1, y+1, z+1)
	bdr.Position(x-1, y+1, z-1)
	face()
	return bdr
}
