package gfx_test

import (
	"github.com/go-gl/mathgl/mgl32"

	"j4k.co/noisegl/geometry"
	"j4k.co/noisegl/gfx"
)

var mgl32Zero = mgl32.Vec3{}

const (
	testVert gfx.VertexShader = `#version 410
in vec3 vs_Pos;
in vec3 vs_Nor;
uniform mat4 u_ViewProj;
void main() { gl_Position = u_ViewProj * vec4(vs_Pos, 1.0); }`

	testFrag gfx.FragmentShader = `#version 410
uniform vec4 u_Color;
out vec4 out_Col;
void main() { out_Col = u_Color; }`
)

func squareBuilder() *geometry.Builder {
	return geometry.Square(mgl32Zero)
}

func positionOnly() *geometry.Builder {
	bdr := geometry.NewBuilder(gfx.VertexPosition)
	bdr.Position(0, 0, 0)
	bdr.Position(1, 0, 0)
	bdr.Position(0, 1, 0)
	bdr.Indices(0, 1, 2)
	return bdr
}
