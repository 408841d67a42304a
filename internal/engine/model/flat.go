package model

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/logger"
	"github.com/Faultbox/voxelcraft/pkg/formats"
)

// BuildOBP creates a flat model from a parsed OBP file. Bones keep their
// indexed meshes; animations are shared with the parsed file.
func BuildOBP(obp *formats.OBP) *Model {
	m := newModel(FormatOBP, len(obp.Bones))
	m.Animations = obp.Animations

	for i := range obp.Bones {
		src := &obp.Bones[i]
		bone := Bone{
			Name:     src.Name,
			Parent:   -1,
			Pivot:    mgl32.Vec3(src.Pivot),
			Vertices: make([]Vertex, len(src.Positions)),
			Indices:  src.Indices,
		}
		for j, p := range src.Positions {
			bone.Vertices[j].Position = mgl32.Vec3(p)
			if j < len(src.UVs) {
				bone.Vertices[j].TexCoord = mgl32.Vec2(src.UVs[j])
			}
		}
		m.Bones = append(m.Bones, bone)
	}
	return m
}

// LoadOBP parses and builds an OBP model, logging recovered problems.
func LoadOBP(data []byte) (*Model, error) {
	obp, err := formats.ParseOBP(data)
	if err != nil {
		return nil, err
	}
	for _, w := range obp.Warnings {
		logger.Warn("OBP load", zap.String("problem", w))
	}
	return BuildOBP(obp), nil
}

// Triangles calls fn for every triangle of bone b, in index order for OBP
// bones and in vertex order for Bedrock bones.
func (m *Model) Triangles(b int, fn func(a, b, c Vertex)) {
	bone := &m.Bones[b]
	if bone.Indices == nil {
		for i := 0; i+2 < len(bone.Vertices); i += 3 {
			fn(bone.Vertices[i], bone.Vertices[i+1], bone.Vertices[i+2])
		}
		return
	}
	n := uint32(len(bone.Vertices))
	for i := 0; i+2 < len(bone.Indices); i += 3 {
		i0, i1, i2 := bone.Indices[i], bone.Indices[i+1], bone.Indices[i+2]
		if i0 >= n || i1 >= n || i2 >= n {
			continue
		}
		fn(bone.Vertices[i0], bone.Vertices[i1], bone.Vertices[i2])
	}
}

// ToOBP flattens m into an OBP file. Bones keep their pivots and baked
// vertices; Bedrock bones get sequential indices and lose their parents.
// Rotation keys of anim are negated so that the OBP sign convention poses
// the bones the same way. Position keys have no OBP record and are dropped.
func (m *Model) ToOBP(anim *formats.Animation) *formats.OBP {
	obp := &formats.OBP{Bones: make([]formats.OBPBone, 0, len(m.Bones))}

	for i := range m.Bones {
		src := &m.Bones[i]
		bone := formats.OBPBone{
			Name:      src.Name,
			Pivot:     src.Pivot,
			Positions: make([][3]float32, len(src.Vertices)),
			UVs:       make([][2]float32, len(src.Vertices)),
			Indices:   src.Indices,
		}
		for j, v := range src.Vertices {
			bone.Positions[j] = v.Position
			bone.UVs[j] = v.TexCoord
		}
		if bone.Indices == nil {
			bone.Indices = make([]uint32, len(src.Vertices)-len(src.Vertices)%3)
			for j := range bone.Indices {
				bone.Indices[j] = uint32(j)
			}
		}
		obp.Bones = append(obp.Bones, bone)
	}

	if anim == nil {
		return obp
	}
	sign := float32(-1)
	if m.Format == FormatOBP {
		sign = 1
	}
	clip := &formats.Animation{Name: anim.Name, Duration: anim.Duration, Loop: anim.Loop}
	for _, ch := range anim.Channels {
		if len(ch.Rotation) == 0 {
			continue
		}
		keys := make([]formats.Keyframe, len(ch.Rotation))
		for i, k := range ch.Rotation {
			keys[i] = formats.Keyframe{Time: k.Time, Value: [3]float32{sign * k.Value[0], sign * k.Value[1], sign * k.Value[2]}}
		}
		clip.Channels = append(clip.Channels, formats.AnimationChannel{Bone: ch.Bone, Rotation: keys})
	}
	obp.Animations = []*formats.Animation{clip}
	return obp
}
