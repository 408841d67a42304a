package renderer

import "github.com/Faultbox/voxelcraft/internal/game/world"

// ChunkVisible reports whether a chunk's centre lies within renderDistance
// chunks of the camera on the XZ plane.
func ChunkVisible(c *world.Chunk, camX, camZ, renderDistance float32) bool {
	x, z := c.Center()
	dx, dz := x-camX, z-camZ
	r := renderDistance * world.ChunkSize
	return dx*dx+dz*dz < r*r
}

// ChunkOffset is the world translation of a chunk mesh. Blocks are baked
// from their corner but simulated centred on X/Z.
func ChunkOffset(c *world.Chunk) (x, y, z float32) {
	return float32(c.CX*world.ChunkSize) - 0.5, 0, float32(c.CZ*world.ChunkSize) - 0.5
}
