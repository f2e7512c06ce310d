package gfx

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	minCameraDistance = 0.5
	maxPitch          = math32.Pi/2 - 0.01
)

// Camera is a perspective camera looking from Position at Target. The view
// matrix is rebuilt by Update when the orientation changes; the projection
// is rebuilt only by UpdateProjectionMatrix.
type Camera struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	FovY float32 // radians
	Near float32
	Far  float32

	aspect float32
	dirty  bool
	view   mgl32.Mat4
	proj   mgl32.Mat4
}

func NewCamera(position, target mgl32.Vec3) *Camera {
	c := &Camera{
		position: position,
		target:   target,
		up:       mgl32.Vec3{0, 1, 0},
		FovY:     mgl32.DegToRad(45),
		Near:     0.1,
		Far:      1000,
		aspect:   1,
		dirty:    true,
	}
	c.Update()
	c.UpdateProjectionMatrix()
	return c
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Target() mgl32.Vec3   { return c.target }
func (c *Camera) Aspect() float32      { return c.aspect }

func (c *Camera) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.dirty = true
}

func (c *Camera) SetTarget(t mgl32.Vec3) {
	c.target = t
	c.dirty = true
}

func (c *Camera) SetUp(up mgl32.Vec3) {
	c.up = up
	c.dirty = true
}

// Update recomputes the view matrix if position, target or up changed since
// the last call.
func (c *Camera) Update() {
	if !c.dirty {
		return
	}
	c.view = mgl32.LookAtV(c.position, c.target, c.up)
	c.dirty = false
}

// SetAspectRatio records the new aspect ratio. UpdateProjectionMatrix must be
// called before the next frame for it to take effect.
func (c *Camera) SetAspectRatio(ratio float32) {
	c.aspect = ratio
}

func (c *Camera) UpdateProjectionMatrix() {
	c.proj = mgl32.Perspective(c.FovY, c.aspect, c.Near, c.Far)
}

func (c *Camera) ViewMatrix() mgl32.Mat4       { return c.view }
func (c *Camera) ProjectionMatrix() mgl32.Mat4 { return c.proj }

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.proj.Mul4(c.view)
}

// Orbit rotates the camera around its target by yaw and pitch radians.
// Pitch stops just short of the poles so up never lines up with the view
// direction.
func (c *Camera) Orbit(yaw, pitch float32) {
	offset := c.position.Sub(c.target)
	r := offset.Len()
	if r == 0 {
		return
	}
	theta := math32.Atan2(offset.X(), offset.Z()) + yaw
	phi := math32.Asin(clamp(offset.Y()/r, -1, 1)) + pitch
	phi = clamp(phi, -maxPitch, maxPitch)
	cp := math32.Cos(phi)
	offset = mgl32.Vec3{
		r * cp * math32.Sin(theta),
		r * math32.Sin(phi),
		r * cp * math32.Cos(theta),
	}
	c.SetPosition(c.target.Add(offset))
}

// Zoom scales the distance to the target by factor.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	offset := c.position.Sub(c.target)
	r := offset.Len()
	if r == 0 {
		return
	}
	nr := math32.Max(r*factor, minCameraDistance)
	c.SetPosition(c.target.Add(offset.Mul(nr / r)))
}

func clamp(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
