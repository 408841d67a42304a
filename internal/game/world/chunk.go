package world

import "sync/atomic"

// ChunkSize is the edge length of a chunk on every axis.
const ChunkSize = 16

// Layer is one of a chunk's static mesh buffers.
type Layer int

const (
	LayerOpaque Layer = iota
	LayerTransparent
	LayerFoliage
	LayerCount
)

func (l Layer) String() string {
	switch l {
	case LayerOpaque:
		return "opaque"
	case LayerTransparent:
		return "transparent"
	case LayerFoliage:
		return "foliage"
	}
	return "unknown"
}

// TileEntity is a dynamic block extracted from a chunk during its last bake.
type TileEntity struct {
	X, Y, Z   int // Chunk-local
	Type      BlockID
	AnimState float32 // 0 closed .. 1 open
	Rotation  int     // 0-3, quarter turns
}

// tileEntityCapacity is the initial capacity of a chunk's tile-entity list.
const tileEntityCapacity = 4

// Chunk is a 16³ block grid with its baked mesh state. Blocks are indexed
// [x][y][z] and guarded by the owning World's lock.
type Chunk struct {
	CX, CZ int
	Blocks [ChunkSize][ChunkSize][ChunkSize]BlockID

	// Vertex counts of the last upload, per layer. Render thread only.
	VertexCounts [LayerCount]int
	// Rebuilt wholesale by every bake. Render thread only.
	TileEntities []TileEntity

	// NeedsRebuild is set by block edits and cleared by the baker.
	NeedsRebuild atomic.Bool
}

// Index returns the chunk's position in a row-major world grid.
func (c *Chunk) Index(extent int) int {
	return c.CX*extent + c.CZ
}

// ResetTileEntities empties the list while keeping its capacity.
func (c *Chunk) ResetTileEntities() {
	if c.TileEntities == nil {
		c.TileEntities = make([]TileEntity, 0, tileEntityCapacity)
		return
	}
	c.TileEntities = c.TileEntities[:0]
}

// AddTileEntity appends e, doubling the capacity when full.
func (c *Chunk) AddTileEntity(e TileEntity) {
	if len(c.TileEntities) == cap(c.TileEntities) {
		grown := make([]TileEntity, len(c.TileEntities), max(2*cap(c.TileEntities), tileEntityCapacity))
		copy(grown, c.TileEntities)
		c.TileEntities = grown
	}
	c.TileEntities = append(c.TileEntities, e)
}

// Center returns the centre of the chunk on the XZ plane.
func (c *Chunk) Center() (x, z float32) {
	return float32(c.CX*ChunkSize) + ChunkSize/2, float32(c.CZ*ChunkSize) + ChunkSize/2
}
