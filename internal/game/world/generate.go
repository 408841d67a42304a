package world

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/logger"
)

// GenerateFlat fills the world with a fixed test pattern: a grass floor, a
// checkerboard of stone and flowers above it, scattered flowers, and glass
// pillars every fourth column.
func GenerateFlat(w *World, blocks *BlockTable) {
	grass := blocks.MustFind("Grass")
	stone := blocks.MustFind("Stone")
	flower := blocks.MustFind("Flower")
	glass := blocks.MustFind("Glass")

	w.Edit(func(e BlockEditor) {
		for i := range w.chunks {
			c := &w.chunks[i]
			for x := 0; x < ChunkSize; x++ {
				for y := 0; y < ChunkSize; y++ {
					for z := 0; z < ChunkSize; z++ {
						id := Air
						switch {
						case y == 0:
							id = grass
						case y == 1 && (x+z)%2 == 0:
							id = stone
						case y == 1:
							id = flower
						case y == 2 && (x+z)%5 == 0:
							id = flower
						case y == 3 && x%4 == 0 && z%4 == 0:
							id = glass
						}
						c.Blocks[x][y][z] = id
					}
				}
			}
			c.NeedsRebuild.Store(true)
		}
	})
	logger.Info("flat world generated", zap.Int("chunks", len(w.chunks)))
}

// GenerateTerrain fills the world with value-noise hills: stone below dirt,
// a grass surface, occasional flowers and small trees. A zero seed picks a
// random one. It returns the seed used.
func GenerateTerrain(w *World, blocks *BlockTable, seed int64) int64 {
	if seed == 0 {
		seed = rand.Int64N(1<<31-1) + 1
	}
	s := int32(seed)

	stone := blocks.MustFind("Stone")
	dirt := blocks.MustFind("Dirt")
	grass := blocks.MustFind("Grass")
	flower := blocks.MustFind("Flower")
	log := blocks.MustFind("Log")
	leaves := blocks.MustFind("Leaves")

	size := w.extent * ChunkSize
	heights := make([]int, size*size)
	for wx := 0; wx < size; wx++ {
		for wz := 0; wz < size; wz++ {
			n := octaveNoise(float32(wx)*0.05, float32(wz)*0.05, 4, 0.5, s)
			heights[wx*size+wz] = int(n*6 + 4)
		}
	}

	w.Edit(func(e BlockEditor) {
		for wx := 0; wx < size; wx++ {
			for wz := 0; wz < size; wz++ {
				h := heights[wx*size+wz]
				for y := 0; y < ChunkSize; y++ {
					id := Air
					switch {
					case y == 0 || y < h-3:
						id = stone
					case y < h-1:
						id = dirt
					case y == h-1:
						id = grass
					case y == h && valueNoise(wx, wz, s+2000) > 0.65:
						id = flower
					}
					e.Set(wx, y, wz, id)
				}
			}
		}

		for wx := 0; wx < size; wx++ {
			for wz := 0; wz < size; wz++ {
				if valueNoise(wx*2, wz*2, s+3000) > 0.92 {
					placeTree(e, wx, heights[wx*size+wz], wz, log, leaves)
				}
			}
		}
	})

	logger.Info("terrain generated", zap.Int64("seed", seed), zap.Int("chunks", len(w.chunks)))
	return seed
}

// placeTree puts a three-block trunk at (x, y, z) and a small leaf ball on top.
func placeTree(e BlockEditor, x, y, z int, log, leaves BlockID) {
	const trunk = 3
	for dy := 0; dy < trunk; dy++ {
		e.Set(x, y+dy, z, log)
	}
	top := y + trunk
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if abs(dx)+abs(dy)+abs(dz) > 2 {
					continue
				}
				if e.At(x+dx, top+dy, z+dz) == Air {
					e.Set(x+dx, top+dy, z+dz, leaves)
				}
			}
		}
	}
}

// valueNoise is a hash-based lattice noise in [-1, 1].
func valueNoise(x, z int, seed int32) float32 {
	n := int32(x) + int32(z)*57 + seed*131
	n = (n << 13) ^ n
	return 1 - float32((n*(n*n*15731+789221)+1376312589)&0x7fffffff)/1073741824
}

func smoothNoise(x, z float32, seed int32) float32 {
	ix, iz := int(math32.Floor(x)), int(math32.Floor(z))
	fx, fz := x-float32(ix), z-float32(iz)

	v1 := valueNoise(ix, iz, seed)
	v2 := valueNoise(ix+1, iz, seed)
	v3 := valueNoise(ix, iz+1, seed)
	v4 := valueNoise(ix+1, iz+1, seed)

	i1 := v1*(1-fx) + v2*fx
	i2 := v3*(1-fx) + v4*fx
	return i1*(1-fz) + i2*fz
}

func octaveNoise(x, z float32, octaves int, persistence float32, seed int32) float32 {
	var total, maxValue float32
	frequency, amplitude := float32(1), float32(1)
	for i := 0; i < octaves; i++ {
		total += smoothNoise(x*frequency, z*frequency, seed) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxValue
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
