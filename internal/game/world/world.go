// Package world holds the voxel grid, block definitions and the player's
// interaction with them.
package world

import (
	"sync"

	"github.com/chewxy/math32"
)

// DefaultExtent is the default world size in chunks per axis.
const DefaultExtent = 20

// World is a square grid of chunks allocated once. Block data is shared by
// the simulation (edits, collision) and render (baking) threads and is
// guarded by an RWMutex; everything else on a chunk belongs to one side.
type World struct {
	mu     sync.RWMutex
	extent int
	chunks []Chunk
}

// New allocates an extent×extent world of air, every chunk marked dirty.
func New(extent int) *World {
	if extent < 1 {
		extent = DefaultExtent
	}
	w := &World{
		extent: extent,
		chunks: make([]Chunk, extent*extent),
	}
	for cx := 0; cx < extent; cx++ {
		for cz := 0; cz < extent; cz++ {
			c := &w.chunks[cx*extent+cz]
			c.CX, c.CZ = cx, cz
			c.NeedsRebuild.Store(true)
		}
	}
	return w
}

// Extent returns the world size in chunks per axis.
func (w *World) Extent() int {
	return w.extent
}

// InBounds reports whether chunk coordinates are inside the world.
func (w *World) InBounds(cx, cz int) bool {
	return cx >= 0 && cx < w.extent && cz >= 0 && cz < w.extent
}

// Chunk returns the chunk at chunk coordinates, or nil outside the world.
func (w *World) Chunk(cx, cz int) *Chunk {
	if !w.InBounds(cx, cz) {
		return nil
	}
	return &w.chunks[cx*w.extent+cz]
}

// Chunks returns every chunk in row-major order.
func (w *World) Chunks() []Chunk {
	return w.chunks
}

// BlockView reads blocks while the world's read lock is held.
type BlockView struct {
	w *World
}

// Read calls fn with the block data read-locked.
func (w *World) Read(fn func(v BlockView)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(BlockView{w: w})
}

// Edit calls fn with the block data write-locked.
func (w *World) Edit(fn func(e BlockEditor)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(BlockEditor{BlockView{w: w}})
}

// At returns the block at world coordinates. Anything outside the world,
// including Y outside one chunk, is air.
func (v BlockView) At(x, y, z int) BlockID {
	c, lx, ly, lz := v.w.locate(x, y, z)
	if c == nil {
		return Air
	}
	return c.Blocks[lx][ly][lz]
}

// Chunk returns the chunk at chunk coordinates, or nil.
func (v BlockView) Chunk(cx, cz int) *Chunk {
	return v.w.Chunk(cx, cz)
}

// BlockEditor writes blocks while the world's write lock is held.
type BlockEditor struct {
	BlockView
}

// Set stores id at world coordinates and marks the chunk dirty, plus the
// neighbour chunk when the block sits on a chunk border. It reports false
// outside the world.
func (e BlockEditor) Set(x, y, z int, id BlockID) bool {
	c, lx, ly, lz := e.w.locate(x, y, z)
	if c == nil {
		return false
	}
	c.Blocks[lx][ly][lz] = id
	c.NeedsRebuild.Store(true)

	mark := func(cx, cz int) {
		if n := e.w.Chunk(cx, cz); n != nil {
			n.NeedsRebuild.Store(true)
		}
	}
	if lx == 0 {
		mark(c.CX-1, c.CZ)
	}
	if lx == ChunkSize-1 {
		mark(c.CX+1, c.CZ)
	}
	if lz == 0 {
		mark(c.CX, c.CZ-1)
	}
	if lz == ChunkSize-1 {
		mark(c.CX, c.CZ+1)
	}
	return true
}

// BlockAt returns the block at world coordinates.
func (w *World) BlockAt(x, y, z int) BlockID {
	var id BlockID
	w.Read(func(v BlockView) { id = v.At(x, y, z) })
	return id
}

// SetBlock stores id at world coordinates; see BlockEditor.Set.
func (w *World) SetBlock(x, y, z int, id BlockID) bool {
	var ok bool
	w.Edit(func(e BlockEditor) { ok = e.Set(x, y, z, id) })
	return ok
}

// locate resolves world coordinates into a chunk and local coordinates,
// flooring negatives.
func (w *World) locate(x, y, z int) (c *Chunk, lx, ly, lz int) {
	if y < 0 || y >= ChunkSize {
		return nil, 0, 0, 0
	}
	cx, lx := floorDiv(x, ChunkSize)
	cz, lz := floorDiv(z, ChunkSize)
	c = w.Chunk(cx, cz)
	if c == nil {
		return nil, 0, 0, 0
	}
	return c, lx, y, lz
}

// floorDiv returns the floored quotient and the non-negative remainder.
func floorDiv(a, b int) (q, r int) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

// BlockCoord returns the integer cell containing a world-space coordinate.
func BlockCoord(f float32) int {
	return int(math32.Floor(f))
}
