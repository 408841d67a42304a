package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis is a cardinal face direction.
type Axis int

// Face directions, in the order used by chunk visibility masks.
const (
	AxisPosZ Axis = iota
	AxisNegZ
	AxisNegX
	AxisPosX
	AxisNegY
	AxisPosY
	AxisNone Axis = -1
)

// FaceNormal returns the unnormalized normal of a counter-clockwise triangle.
func FaceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// DominantAxis returns the cardinal direction n points along when one
// component is strictly larger in magnitude than both others, else AxisNone.
func DominantAxis(n mgl32.Vec3) Axis {
	ax, ay, az := math32.Abs(n[0]), math32.Abs(n[1]), math32.Abs(n[2])
	switch {
	case ax > ay && ax > az:
		if n[0] > 0 {
			return AxisPosX
		}
		return AxisNegX
	case ay > ax && ay > az:
		if n[1] > 0 {
			return AxisPosY
		}
		return AxisNegY
	case az > ax && az > ay:
		if n[2] > 0 {
			return AxisPosZ
		}
		return AxisNegZ
	}
	return AxisNone
}

// TransformPoint applies m to the point p.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, m)
}
