package model

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelcraft/pkg/formats"
)

func TestToOBP_RoundTrip(t *testing.T) {
	geo := cubeGeometry(formats.BedrockCube{Origin: [3]float32{-8, 0, -8}, Size: [3]float32{16, 8, 16}})
	geo.Bones[0].Pivot = [3]float32{0, 8, 0}
	src := BuildBedrock(geo, BuildOptions{BlockShape: true})

	obp := src.ToOBP(nil)
	if len(obp.Bones) != 1 || len(obp.Bones[0].Indices) != 36 {
		t.Fatalf("expected one bone with 36 indices, got %+v", obp.Bones)
	}
	if obp.Bones[0].Pivot != [3]float32{0, 0.5, 0} {
		t.Errorf("expected pivot in block units, got %v", obp.Bones[0].Pivot)
	}

	var buf bytes.Buffer
	if err := formats.WriteOBP(&buf, obp); err != nil {
		t.Fatalf("WriteOBP: %v", err)
	}
	dst, err := LoadOBP(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadOBP: %v", err)
	}

	var want, got []Vertex
	src.Triangles(0, func(a, b, c Vertex) { want = append(want, a, b, c) })
	dst.Triangles(0, func(a, b, c Vertex) { got = append(got, a, b, c) })
	if len(got) != len(want) {
		t.Fatalf("expected %d corners, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Position.ApproxFuncEqual(want[i].Position, near) || !got[i].TexCoord.ApproxFuncEqual(want[i].TexCoord, near) {
			t.Errorf("corner %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestToOBP_AnimationPose(t *testing.T) {
	geo := &formats.BedrockGeometry{
		Bones: []formats.BedrockBone{{Name: "lid", Pivot: [3]float32{0, 16, 0}}},
	}
	src := BuildBedrock(geo, BuildOptions{})
	anim := &formats.Animation{
		Name:     "open",
		Duration: 2,
		Loop:     true,
		Channels: []formats.AnimationChannel{
			{
				Bone: "lid",
				Rotation: []formats.Keyframe{
					{Time: 0, Value: [3]float32{0, 0, 0}},
					{Time: 1, Value: [3]float32{30, 45, 90}},
				},
				Position: []formats.Keyframe{{Time: 0, Value: [3]float32{16, 0, 0}}},
			},
			{Bone: "moves", Position: []formats.Keyframe{{Time: 0, Value: [3]float32{1, 1, 1}}}},
		},
	}

	obp := src.ToOBP(anim)
	if len(obp.Animations) != 1 {
		t.Fatalf("expected one clip, got %d", len(obp.Animations))
	}
	clip := obp.Animations[0]
	if clip.Name != "open" || clip.Duration != 2 || !clip.Loop {
		t.Errorf("unexpected clip header %+v", clip)
	}
	if len(clip.Channels) != 1 {
		t.Fatalf("expected position-only channel dropped, got %d channels", len(clip.Channels))
	}
	if k := clip.Channels[0].Rotation[1].Value; k != [3]float32{-30, -45, -90} {
		t.Errorf("expected negated key, got %v", k)
	}
	if clip.Channels[0].Position != nil {
		t.Error("expected position keys dropped")
	}

	// Without position keys both conventions give the same pose.
	anim.Channels[0].Position = nil
	flat := BuildOBP(obp)
	for _, at := range []float32{0, 0.5, 1} {
		want := BoneTransforms(src, anim, at, mgl32.Ident4())
		got := BoneTransforms(flat, flat.Animation(), at, mgl32.Ident4())
		if !got[0].ApproxFuncEqual(want[0], near) {
			t.Errorf("t=%v: expected %v, got %v", at, want[0], got[0])
		}
	}
}
