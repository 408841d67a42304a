// Package debug provides debug visualization and capture utilities.
package debug

// OutlineInset pushes the selection outline just outside the block so it
// does not z-fight with the faces.
const OutlineInset = 0.002

// WireframeBox returns line vertices for a box: 24 vertices (12 edges × 2
// endpoints), [x, y, z] per vertex.
func WireframeBox(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Verticals
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// BlockOutline returns the wireframe of the block cell (x, y, z) in world
// space. Cells are drawn centred on X/Z, so the box spans x±0.5 and z±0.5.
func BlockOutline(x, y, z int) []float32 {
	fx, fy, fz := float32(x), float32(y), float32(z)
	const e = OutlineInset
	return WireframeBox(fx-0.5-e, fy-e, fz-0.5-e, fx+0.5+e, fy+1+e, fz+0.5+e)
}
