package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/google/uuid"

	"github.com/Faultbox/voxelcraft/internal/engine/model"
	"github.com/Faultbox/voxelcraft/internal/engine/terrain"
	"github.com/Faultbox/voxelcraft/internal/game/world"
)

// gpuBuffer is one VAO/VBO pair with its vertex count.
type gpuBuffer struct {
	vao, vbo uint32
	count    int32
}

func (b *gpuBuffer) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
	}
	*b = gpuBuffer{}
}

// upload replaces the buffer contents, creating the objects on first use.
// withType adds the per-vertex block type attribute (stride 6 instead of 5).
func (b *gpuBuffer) upload(floats []float32, withType bool) {
	if b.vao == 0 {
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(1, &b.vbo)
	}
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(floats) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(floats)*4, gl.Ptr(floats), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}

	stride := int32(model.VertexStride)
	if withType {
		stride = terrain.Stride
	}
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride*4, 3*4)
	gl.EnableVertexAttribArray(1)
	if withType {
		gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride*4, 5*4)
		gl.EnableVertexAttribArray(2)
	} else {
		gl.DisableVertexAttribArray(2)
	}

	b.count = int32(len(floats)) / stride
	gl.BindVertexArray(0)
}

// uploadLines replaces the buffer with position-only line vertices.
func (b *gpuBuffer) uploadLines(floats []float32) {
	if b.vao == 0 {
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(1, &b.vbo)
	}
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(floats)*4, gl.Ptr(floats), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	b.count = int32(len(floats) / 3)
	gl.BindVertexArray(0)
}

func (b *gpuBuffer) draw(mode uint32) {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(mode, 0, b.count)
}

// chunkMesh holds the three layer buffers of one chunk.
type chunkMesh struct {
	layers [world.LayerCount]gpuBuffer
}

// entityMesh holds one buffer per bone of a tile-entity model.
type entityMesh struct {
	bones []gpuBuffer
}

// entityMeshes caches tile-entity meshes by model id.
type entityMeshes map[uuid.UUID]*entityMesh

// get returns the mesh for m, uploading it on first use.
func (c entityMeshes) get(m *model.Model) *entityMesh {
	if mesh, ok := c[m.ID]; ok {
		return mesh
	}
	mesh := &entityMesh{bones: make([]gpuBuffer, len(m.Bones))}
	for i := range m.Bones {
		mesh.bones[i].upload(boneTriangles(m, i), false)
	}
	c[m.ID] = mesh
	return mesh
}

func (c entityMeshes) deleteAll() {
	for id, mesh := range c {
		for i := range mesh.bones {
			mesh.bones[i].delete()
		}
		delete(c, id)
	}
}

// boneTriangles flattens bone b of m into position+uv triangles. Bedrock
// bones are already triangle lists; indexed bones are expanded.
func boneTriangles(m *model.Model, b int) []float32 {
	if m.Bones[b].Indices == nil {
		return m.Interleaved(b)
	}
	out := make([]float32, 0, len(m.Bones[b].Vertices)*model.VertexStride)
	m.Triangles(b, func(v0, v1, v2 model.Vertex) {
		for _, v := range [3]model.Vertex{v0, v1, v2} {
			out = append(out, v.Position[0], v.Position[1], v.Position[2], v.TexCoord[0], v.TexCoord[1])
		}
	})
	return out
}
