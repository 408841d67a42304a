package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ReachDistance is how far the player can reach, in blocks.
	ReachDistance = 8
	raycastSteps  = 100
	farAway       = 1e30
)

// RayHit is the result of a block raycast.
type RayHit struct {
	Block [3]int // First non-air cell along the ray
	Place [3]int // Cell stepped from just before Block
}

// Raycast walks the grid from origin along dir (DDA) and returns the first
// non-air cell within maxDist. ok is false when nothing is hit.
func Raycast(v BlockView, origin, dir mgl32.Vec3, maxDist float32) (hit RayHit, ok bool) {
	cell := [3]int{BlockCoord(origin[0]), BlockCoord(origin[1]), BlockCoord(origin[2])}

	var step [3]int
	var tMax, tDelta [3]float32
	for i := 0; i < 3; i++ {
		step[i] = -1
		if dir[i] > 0 {
			step[i] = 1
		}
		if dir[i] == 0 {
			tDelta[i], tMax[i] = farAway, farAway
			continue
		}
		tDelta[i] = math32.Abs(1 / dir[i])
		base := math32.Floor(origin[i])
		if step[i] > 0 {
			tMax[i] = (base + 1 - origin[i]) * tDelta[i]
		} else {
			tMax[i] = (origin[i] - base) * tDelta[i]
		}
	}

	last := cell
	for i := 0; i < raycastSteps; i++ {
		if v.At(cell[0], cell[1], cell[2]) != Air {
			return RayHit{Block: cell, Place: last}, true
		}
		last = cell

		axis := 2
		if tMax[0] < tMax[1] {
			if tMax[0] < tMax[2] {
				axis = 0
			}
		} else if tMax[1] < tMax[2] {
			axis = 1
		}
		dist := tMax[axis]
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		if dist > maxDist {
			break
		}
	}
	return RayHit{}, false
}
