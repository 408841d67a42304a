package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelcraft/pkg/formats"
)

// blockShiftThreshold is the minimum X/Z below which a block shape is
// considered centred on the origin.
const blockShiftThreshold = -0.1

// BuildBedrock creates a hierarchical model from parsed Bedrock geometry.
// Every cube becomes a box (six quads) or, when one size component is zero,
// a double-sided plane. Vertices are in block units (pixels / 16).
func BuildBedrock(geo *formats.BedrockGeometry, opts BuildOptions) *Model {
	m := newModel(FormatBedrock, len(geo.Bones))
	m.TextureWidth, m.TextureHeight = geo.TextureWidth, geo.TextureHeight
	if m.TextureWidth == 0 && m.TextureHeight == 0 {
		m.TextureWidth, m.TextureHeight = opts.TextureWidth, opts.TextureHeight
	}
	if m.TextureWidth <= 0 {
		m.TextureWidth = FallbackTextureSize
	}
	if m.TextureHeight <= 0 {
		m.TextureHeight = FallbackTextureSize
	}

	for i := range geo.Bones {
		src := &geo.Bones[i]
		bone := Bone{
			Name:       src.Name,
			ParentName: src.Parent,
			Parent:     -1,
			Pivot:      pixels(src.Pivot),
		}

		mb := meshBuilder{texW: float32(m.TextureWidth), texH: float32(m.TextureHeight)}
		for _, cube := range src.Cubes {
			pivot := bone.Pivot
			if cube.HasPivot {
				pivot = pixels(cube.Pivot)
			}
			mb.addCube(cube, pivot)
		}
		bone.Vertices = mb.vertices

		if opts.BlockShape {
			shiftIntoBlock(bone.Vertices)
		}
		m.Bones = append(m.Bones, bone)
	}

	m.linkParents()
	return m
}

// LoadBedrock parses and builds a Bedrock model. A partial model read from
// malformed JSON is returned together with the parse error.
func LoadBedrock(data []byte, opts BuildOptions) (*Model, error) {
	geo, err := formats.ParseBedrockGeometry(data)
	if geo == nil {
		return nil, err
	}
	return BuildBedrock(geo, opts), err
}

// RotatePoint rotates p about pivot by Euler angles in degrees, applying
// Rx(-x)·Ry(-y)·Rz(-z). A zero rotation returns p untouched.
func RotatePoint(p, pivot, deg mgl32.Vec3) mgl32.Vec3 {
	if deg[0] == 0 && deg[1] == 0 && deg[2] == 0 {
		return p
	}

	rot := mgl32.Ident3()
	if deg[0] != 0 {
		rot = rot.Mul3(mgl32.Rotate3DX(mgl32.DegToRad(-deg[0])))
	}
	if deg[1] != 0 {
		rot = rot.Mul3(mgl32.Rotate3DY(mgl32.DegToRad(-deg[1])))
	}
	if deg[2] != 0 {
		rot = rot.Mul3(mgl32.Rotate3DZ(mgl32.DegToRad(-deg[2])))
	}
	return rot.Mul3x1(p.Sub(pivot)).Add(pivot)
}

// meshBuilder accumulates the triangles of one bone.
type meshBuilder struct {
	texW, texH float32
	vertices   []Vertex
}

// uv converts texel coordinates to normalized, V-flipped texture coordinates.
func (mb *meshBuilder) uv(u, v float32) mgl32.Vec2 {
	return mgl32.Vec2{u / mb.texW, 1 - v/mb.texH}
}

// quad emits the triangles BL,BR,TR and BL,TR,TL. Corners and UVs are given
// as TL, TR, BR, BL.
func (mb *meshBuilder) quad(corners [4]mgl32.Vec3, uvs [4]mgl32.Vec2) {
	const tl, tr, br, bl = 0, 1, 2, 3
	for _, i := range [6]int{bl, br, tr, bl, tr, tl} {
		mb.vertices = append(mb.vertices, Vertex{Position: corners[i], TexCoord: uvs[i]})
	}
}

// addCube emits a box or a double-sided plane for one cube.
func (mb *meshBuilder) addCube(cube formats.BedrockCube, pivot mgl32.Vec3) {
	lo := pixels(cube.Origin)
	hi := pixels([3]float32{
		cube.Origin[0] + cube.Size[0],
		cube.Origin[1] + cube.Size[1],
		cube.Origin[2] + cube.Size[2],
	})

	// c<x><y><z>: 0 is the low bound on that axis, 1 the high one.
	rot := mgl32.Vec3(cube.Rotation)
	c000 := RotatePoint(mgl32.Vec3{lo[0], lo[1], lo[2]}, pivot, rot)
	c100 := RotatePoint(mgl32.Vec3{hi[0], lo[1], lo[2]}, pivot, rot)
	c010 := RotatePoint(mgl32.Vec3{lo[0], hi[1], lo[2]}, pivot, rot)
	c110 := RotatePoint(mgl32.Vec3{hi[0], hi[1], lo[2]}, pivot, rot)
	c001 := RotatePoint(mgl32.Vec3{lo[0], lo[1], hi[2]}, pivot, rot)
	c101 := RotatePoint(mgl32.Vec3{hi[0], lo[1], hi[2]}, pivot, rot)
	c011 := RotatePoint(mgl32.Vec3{lo[0], hi[1], hi[2]}, pivot, rot)
	c111 := RotatePoint(mgl32.Vec3{hi[0], hi[1], hi[2]}, pivot, rot)

	u, v := cube.UV[0], cube.UV[1]
	w, h, d := cube.Size[0], cube.Size[1], cube.Size[2]

	// rect returns TL, TR, BR, BL texture coordinates spanning u0..u1, v0..v1.
	rect := func(u0, v0, u1, v1 float32) [4]mgl32.Vec2 {
		return [4]mgl32.Vec2{mb.uv(u0, v0), mb.uv(u1, v0), mb.uv(u1, v1), mb.uv(u0, v1)}
	}

	switch {
	case d == 0:
		mb.quad([4]mgl32.Vec3{c010, c110, c100, c000}, rect(u, v, u+w, v+h))
		mb.quad([4]mgl32.Vec3{c110, c010, c000, c100}, rect(u+w, v, u, v+h))
	case w == 0:
		mb.quad([4]mgl32.Vec3{c011, c010, c000, c001}, rect(u, v, u+d, v+h))
		mb.quad([4]mgl32.Vec3{c010, c011, c001, c000}, rect(u+d, v, u, v+h))
	case h == 0:
		mb.quad([4]mgl32.Vec3{c001, c101, c100, c000}, rect(u, v, u+w, v+d))
		mb.quad([4]mgl32.Vec3{c000, c100, c101, c001}, rect(u, v+d, u+w, v))
	default:
		// North (Z-)
		mb.quad([4]mgl32.Vec3{c110, c010, c000, c100}, rect(u+d+w, v+d, u+d, v+d+h))
		// South (Z+)
		mb.quad([4]mgl32.Vec3{c011, c111, c101, c001}, rect(u+2*d+w, v+d, u+2*d+2*w, v+d+h))
		// West (X-)
		mb.quad([4]mgl32.Vec3{c010, c011, c001, c000}, rect(u+d, v+d, u, v+d+h))
		// East (X+)
		mb.quad([4]mgl32.Vec3{c111, c110, c100, c101}, rect(u+2*d+w, v+d, u+d+w, v+d+h))
		// Up (Y+)
		mb.quad([4]mgl32.Vec3{c010, c110, c111, c011}, rect(u+d, v, u+d+w, v+d))
		// Down (Y-)
		mb.quad([4]mgl32.Vec3{c001, c101, c100, c000}, rect(u+d+w, v, u+d+2*w, v+d))
	}
}

// shiftIntoBlock moves a centred block shape (min X or Z below zero) by half
// a block on that axis.
func shiftIntoBlock(verts []Vertex) {
	if len(verts) == 0 {
		return
	}
	minX, minZ := verts[0].Position[0], verts[0].Position[2]
	for _, v := range verts[1:] {
		minX = min(minX, v.Position[0])
		minZ = min(minZ, v.Position[2])
	}

	var shift mgl32.Vec3
	if minX < blockShiftThreshold {
		shift[0] = 0.5
	}
	if minZ < blockShiftThreshold {
		shift[2] = 0.5
	}
	if shift == (mgl32.Vec3{}) {
		return
	}
	for i := range verts {
		verts[i].Position = verts[i].Position.Add(shift)
	}
}

func pixels(p [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{p[0] / 16, p[1] / 16, p[2] / 16}
}
