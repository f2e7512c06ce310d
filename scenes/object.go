package scenes

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"j4k.co/noisegl/geometry"
	"j4k.co/noisegl/gfx"
)

type ShapeKind uint8

const (
	Icosphere ShapeKind = iota
	Square
	Cube
	numShapes
)

var shapeNames = [numShapes]string{
	Icosphere: "icosphere",
	Square:    "square",
	Cube:      "cube",
}

func (k ShapeKind) String() string {
	if k < numShapes {
		return shapeNames[k]
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

// ParseShapeKind maps a shape name as written in config back to its kind.
func ParseShapeKind(name string) (ShapeKind, error) {
	for k, n := range shapeNames {
		if n == name {
			return ShapeKind(k), nil
		}
	}
	return 0, fmt.Errorf("scenes: unknown shape %q", name)
}

// Kinds lists every shape in draw order.
func Kinds() []ShapeKind {
	return []ShapeKind{Icosphere, Square, Cube}
}

// build produces the CPU-side mesh for kind. Only the icosphere depends on
// the tessellation level.
func build(kind ShapeKind, center mgl32.Vec3, radius float32, tessellations int) (*geometry.Builder, error) {
	switch kind {
	case Icosphere:
		return geometry.Icosphere(center, radius, tessellations)
	case Square:
		return geometry.Square(center), nil
	case Cube:
		return geometry.Cube(center), nil
	default:
		return nil, fmt.Errorf("scenes: unknown shape %v", kind)
	}
}

// upload builds kind and moves it into GPU buffers.
func upload(ctx gfx.Context, kind ShapeKind, center mgl32.Vec3, radius float32, tessellations int) (*gfx.Geometry, error) {
	bdr, err := build(kind, center, radius, tessellations)
	if err != nil {
		return nil, fmt.Errorf("build %v: %w", kind, err)
	}
	geom, err := gfx.NewGeometry(ctx, bdr, gfx.StaticDraw)
	if err != nil {
		return nil, fmt.Errorf("upload %v: %w", kind, err)
	}
	return geom, nil
}
