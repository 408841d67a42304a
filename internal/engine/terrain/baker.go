package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/engine/model"
	"github.com/Faultbox/voxelcraft/internal/game/world"
	"github.com/Faultbox/voxelcraft/internal/logger"
)

// Baker turns chunk block grids into static meshes. Its buffers are
// allocated once at worst-case size and reused by every rebuild, so a Baker
// belongs to one goroutine (the render thread).
type Baker struct {
	blocks   *world.BlockTable
	uploader Uploader
	buffers  [world.LayerCount][]float32

	// Rest poses of OBP block models, by block id.
	poses map[world.BlockID][]mgl32.Mat4
}

// NewBaker creates a baker for the given block table.
func NewBaker(blocks *world.BlockTable, uploader Uploader) *Baker {
	b := &Baker{
		blocks:   blocks,
		uploader: uploader,
		poses:    make(map[world.BlockID][]mgl32.Mat4),
	}
	for i := range b.buffers {
		b.buffers[i] = make([]float32, 0, maxLayerFloats)
	}
	return b
}

// Rebuild bakes chunk (cx, cz) and uploads its three layers.
//
// Dynamic blocks become tile entities and are left out of the static mesh.
// Bedrock models are copied whole; OBP models drop axis-aligned triangles
// whose neighbour hides them. The dirty flag is cleared before the block
// data is read, so an edit made during the bake marks the chunk again.
func (b *Baker) Rebuild(w *world.World, cx, cz int) error {
	chunk := w.Chunk(cx, cz)
	if chunk == nil {
		return fmt.Errorf("rebuild (%d,%d): %w", cx, cz, ErrChunkOutOfRange)
	}

	chunk.NeedsRebuild.Store(false)
	chunk.ResetTileEntities()
	for i := range b.buffers {
		b.buffers[i] = b.buffers[i][:0]
	}

	w.Read(func(v world.BlockView) {
		for x := 0; x < world.ChunkSize; x++ {
			for y := 0; y < world.ChunkSize; y++ {
				for z := 0; z < world.ChunkSize; z++ {
					b.bakeVoxel(v, chunk, x, y, z)
				}
			}
		}
	})

	for layer := world.Layer(0); layer < world.LayerCount; layer++ {
		floats := b.buffers[layer]
		if err := b.uploader.Upload(chunk, layer, floats); err != nil {
			return fmt.Errorf("upload %s layer of chunk (%d,%d): %w", layer, cx, cz, err)
		}
		chunk.VertexCounts[layer] = len(floats) / Stride
	}
	return nil
}

func (b *Baker) bakeVoxel(v world.BlockView, chunk *world.Chunk, x, y, z int) {
	id := chunk.Blocks[x][y][z]
	if id == world.Air {
		return
	}
	def := b.blocks.Get(id)
	if def == nil {
		return
	}

	if def.Dynamic {
		chunk.AddTileEntity(world.TileEntity{X: x, Y: y, Z: z, Type: id})
		return
	}
	if def.Model == nil {
		logger.Debug("block has no model, skipped", zap.String("block", def.Name))
		return
	}

	layer := world.LayerOpaque
	switch {
	case def.Translucent:
		layer = world.LayerTransparent
	case def.Foliage():
		layer = world.LayerFoliage
	}

	offset := mgl32.Vec3{float32(x), float32(y), float32(z)}
	if def.Model.Format != model.FormatOBP {
		b.buffers[layer] = appendModel(b.buffers[layer], def.Model, offset, id)
		return
	}

	mask := AllFaces
	if !def.Foliage() {
		wx, wz := chunk.CX*world.ChunkSize+x, chunk.CZ*world.ChunkSize+z
		mask = b.faceMask(v, wx, y, wz, id)
	}
	b.buffers[layer] = appendCulled(b.buffers[layer], def.Model, b.pose(id, def), offset, id, mask, !def.Foliage())
}

// faceMask returns the faces of the block at world (x, y, z) not hidden by
// a neighbour. Neighbours outside the world are air.
func (b *Baker) faceMask(v world.BlockView, x, y, z int, id world.BlockID) FaceMask {
	var mask FaceMask
	for axis, d := range neighbourOffsets {
		if faceVisible(b.blocks, id, v.At(x+d[0], y+d[1], z+d[2])) {
			mask |= 1 << uint(axis)
		}
	}
	return mask
}

// faceVisible reports whether a face of block id shows against neighbour.
// Opaque neighbours hide it; so does a neighbour of the same translucent type.
func faceVisible(blocks *world.BlockTable, id, neighbour world.BlockID) bool {
	if neighbour == world.Air {
		return true
	}
	n := blocks.Get(neighbour)
	if n == nil {
		return true
	}
	if n.Opaque() {
		return false
	}
	if neighbour == id && blocks.Get(id).Translucent {
		return false
	}
	return true
}

// pose returns the per-bone matrices of an OBP block model at t=0 of its
// animation.
func (b *Baker) pose(id world.BlockID, def *world.BlockDefinition) []mgl32.Mat4 {
	if p, ok := b.poses[id]; ok {
		return p
	}
	anim := def.Animation
	if anim == nil {
		anim = def.Model.Animation()
	}
	p := model.BoneTransforms(def.Model, anim, 0, mgl32.Ident4())
	b.poses[id] = p
	return p
}

func appendVertex(dst []float32, p mgl32.Vec3, uv mgl32.Vec2, id world.BlockID) []float32 {
	return append(dst, p[0], p[1], p[2], uv[0], uv[1], float32(id))
}

// appendModel copies every bone vertex of m, translated by offset.
func appendModel(dst []float32, m *model.Model, offset mgl32.Vec3, id world.BlockID) []float32 {
	for i := range m.Bones {
		for _, vert := range m.Bones[i].Vertices {
			dst = appendVertex(dst, vert.Position.Add(offset), vert.TexCoord, id)
		}
	}
	return dst
}

// appendCulled emits the posed triangles of m. With gate set, triangles
// facing a cardinal direction are kept only when mask shows that face;
// other triangles are always kept.
func appendCulled(dst []float32, m *model.Model, pose []mgl32.Mat4, offset mgl32.Vec3,
	id world.BlockID, mask FaceMask, gate bool) []float32 {

	for i := range m.Bones {
		mat := pose[i]
		m.Triangles(i, func(a, b, c model.Vertex) {
			pa := model.TransformPoint(mat, a.Position)
			pb := model.TransformPoint(mat, b.Position)
			pc := model.TransformPoint(mat, c.Position)
			if gate {
				if axis := model.DominantAxis(model.FaceNormal(pa, pb, pc)); axis != model.AxisNone && !mask.Visible(axis) {
					return
				}
			}
			dst = appendVertex(dst, pa.Add(offset), a.TexCoord, id)
			dst = appendVertex(dst, pb.Add(offset), b.TexCoord, id)
			dst = appendVertex(dst, pc.Add(offset), c.TexCoord, id)
		})
	}
	return dst
}
