// Package camera provides the first-person camera used by the world view.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Default projection planes.
const (
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

// FirstPerson is a camera at an eye position looking along a direction.
type FirstPerson struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3

	FOV  float32 // Vertical, degrees
	Near float32
	Far  float32
}

// NewFirstPerson creates a camera looking down -Z.
func NewFirstPerson(fov float32) *FirstPerson {
	return &FirstPerson{
		Front: mgl32.Vec3{0, 0, -1},
		Up:    mgl32.Vec3{0, 1, 0},
		FOV:   fov,
		Near:  DefaultNear,
		Far:   DefaultFar,
	}
}

// ViewMatrix returns the look-at matrix for the current position and front.
func (c *FirstPerson) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProjectionMatrix returns the perspective matrix for a framebuffer size.
// A zero height is treated as 1.
func (c *FirstPerson) ProjectionMatrix(width, height int) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), float32(width)/float32(height), c.Near, c.Far)
}

// SetFarForDistance pushes the far plane out to cover a render distance in
// blocks, never below DefaultFar.
func (c *FirstPerson) SetFarForDistance(blocks float32) {
	c.Far = max(DefaultFar, blocks)
}
