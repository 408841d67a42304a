// Package terrain bakes chunk block grids into per-layer vertex buffers.
package terrain

import (
	"errors"

	"github.com/Faultbox/voxelcraft/internal/engine/model"
	"github.com/Faultbox/voxelcraft/internal/game/world"
)

// Stride is the number of floats per baked vertex: position(3), uv(2),
// block type(1).
const Stride = 6

// maxLayerFloats is the worst case for one layer: every voxel a full cube.
const maxLayerFloats = world.ChunkSize * world.ChunkSize * world.ChunkSize * 36 * Stride

// ErrChunkOutOfRange is returned when rebuilding a chunk outside the world.
var ErrChunkOutOfRange = errors.New("chunk out of range")

// Uploader receives the baked layers of a chunk. floats is only valid for
// the duration of the call.
type Uploader interface {
	Upload(chunk *world.Chunk, layer world.Layer, floats []float32) error
}

// FaceMask has one bit per model.Axis; a set bit means the face is visible.
type FaceMask uint8

// AllFaces is the mask with every face visible.
const AllFaces FaceMask = 1<<6 - 1

// Visible reports whether the face along axis is visible.
func (m FaceMask) Visible(axis model.Axis) bool {
	return m&(1<<uint(axis)) != 0
}

// neighbourOffsets is indexed by model.Axis.
var neighbourOffsets = [6][3]int{
	model.AxisPosZ: {0, 0, 1},
	model.AxisNegZ: {0, 0, -1},
	model.AxisNegX: {-1, 0, 0},
	model.AxisPosX: {1, 0, 0},
	model.AxisNegY: {0, -1, 0},
	model.AxisPosY: {0, 1, 0},
}
