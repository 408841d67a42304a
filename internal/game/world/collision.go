package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Player bounding box, in blocks. The box is centred on X/Z and starts at
// the feet.
const (
	PlayerWidth  = 0.5
	PlayerHeight = 1.8
)

// Collides reports whether a player standing at pos (feet) overlaps a solid
// block.
func Collides(v BlockView, blocks *BlockTable, pos mgl32.Vec3) bool {
	px := int(math32.Round(pos[0]))
	py := int(math32.Round(pos[1]))
	pz := int(math32.Round(pos[2]))

	for x := px - 1; x <= px+1; x++ {
		for y := py - 1; y <= py+2; y++ {
			for z := pz - 1; z <= pz+1; z++ {
				def := blocks.Get(v.At(x, y, z))
				if def == nil || !def.Solid {
					continue
				}
				if OverlapsBlock(pos, x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

// OverlapsBlock reports whether a player standing at pos overlaps cell
// (x, y, z). Blocks occupy [x-0.5, x+0.5] on X/Z and [y, y+1] on Y.
func OverlapsBlock(pos mgl32.Vec3, x, y, z int) bool {
	const half = PlayerWidth / 2
	bx, by, bz := float32(x), float32(y), float32(z)
	return pos[0]+half > bx-0.5 && pos[0]-half < bx+0.5 &&
		pos[1]+PlayerHeight > by && pos[1] < by+1 &&
		pos[2]+half > bz-0.5 && pos[2]-half < bz+0.5
}
