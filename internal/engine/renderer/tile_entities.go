package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelcraft/internal/engine/model"
	"github.com/Faultbox/voxelcraft/internal/game/world"
)

// RotatorSpeed is the spin rate of rotator tile entities, degrees per second.
const RotatorSpeed = 200.0

// facingAngles maps a tile entity rotation (north, east, south, west) to
// degrees about +Y.
var facingAngles = [4]float32{0, -90, -180, -270}

// TileEntityMatrix returns the model matrix of a tile entity in chunk
// (cx, cz) at time t. The final half-block shift matches the chunk mesh
// offset, so the block occupies the cell the simulation sees.
func TileEntityMatrix(cx, cz int, te world.TileEntity, kind world.RendererKind, t float32) mgl32.Mat4 {
	x := float32(cx*world.ChunkSize + te.X)
	z := float32(cz*world.ChunkSize + te.Z)

	m := mgl32.Translate3D(x, float32(te.Y), z)
	m = m.Mul4(aboutBlockCentre(facingAngles[te.Rotation&3]))

	if kind == world.RendererRotator {
		m = m.Mul4(aboutBlockCentre(t * RotatorSpeed))
	}
	return m.Mul4(mgl32.Translate3D(-0.5, 0, -0.5))
}

// aboutBlockCentre rotates by deg about the vertical axis through the
// centre of the unit block.
func aboutBlockCentre(deg float32) mgl32.Mat4 {
	if deg == 0 {
		return mgl32.Ident4()
	}
	return mgl32.Translate3D(0.5, 0.5, 0.5).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(deg))).
		Mul4(mgl32.Translate3D(-0.5, -0.5, -0.5))
}

// TileEntityPose returns the per-bone matrices of a tile entity. Only
// animated entities sample their block animation; the others hold the rest
// pose.
func TileEntityPose(def *world.BlockDefinition, base mgl32.Mat4, t float32) []mgl32.Mat4 {
	if def.Renderer == world.RendererAnimated {
		return model.BoneTransforms(def.Model, def.Animation, t, base)
	}
	return model.BoneTransforms(def.Model, nil, 0, base)
}
