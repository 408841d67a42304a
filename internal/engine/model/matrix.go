package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelcraft/pkg/formats"
)

// BoneTransforms returns one matrix per bone at animation time t, each
// premultiplied by parent.
//
// Bedrock bones inherit their parent's matrix and rotate about their pivot
// with negated angles in Z, Y, X order; position keys are in pixels. OBP
// bones are independent, rotate with positive angles and take position keys
// in block units.
func BoneTransforms(m *Model, anim *formats.Animation, t float32, parent mgl32.Mat4) []mgl32.Mat4 {
	out := make([]mgl32.Mat4, len(m.Bones))

	if m.Format == FormatOBP {
		for i := range m.Bones {
			pos, rot := Sample(anim, m.Bones[i].Name, t)
			out[i] = parent.Mul4(mgl32.Translate3D(pos[0], pos[1], pos[2])).
				Mul4(pivotRotation(m.Bones[i].Pivot, rot, 1))
		}
		return out
	}

	visited := make([]bool, len(m.Bones))
	var walk func(i int, parentMat mgl32.Mat4)
	walk = func(i int, parentMat mgl32.Mat4) {
		if visited[i] {
			return
		}
		visited[i] = true

		pos, rot := Sample(anim, m.Bones[i].Name, t)
		pos = pos.Mul(1.0 / 16)
		out[i] = parentMat.Mul4(mgl32.Translate3D(pos[0], pos[1], pos[2])).
			Mul4(pivotRotation(m.Bones[i].Pivot, rot, -1))
		for _, c := range m.Bones[i].Children {
			walk(c, out[i])
		}
	}

	for _, r := range m.Roots() {
		walk(r, parent)
	}
	// Bones cut off by the child cap or a parent cycle are posed on their own.
	for i := range m.Bones {
		if !visited[i] {
			walk(i, parent)
		}
	}
	return out
}

// pivotRotation returns T(pivot)·Rz·Ry·Rx·T(-pivot) with angles in degrees
// scaled by sign.
func pivotRotation(pivot, deg mgl32.Vec3, sign float32) mgl32.Mat4 {
	mat := mgl32.Translate3D(pivot[0], pivot[1], pivot[2])
	if deg[2] != 0 {
		mat = mat.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(sign * deg[2])))
	}
	if deg[1] != 0 {
		mat = mat.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(sign * deg[1])))
	}
	if deg[0] != 0 {
		mat = mat.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(sign * deg[0])))
	}
	return mat.Mul4(mgl32.Translate3D(-pivot[0], -pivot[1], -pivot[2]))
}
