package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelcraft/pkg/formats"
)

func twoKeyAnimation(loop bool) *formats.Animation {
	return &formats.Animation{
		Name:     "swing",
		Duration: 2,
		Loop:     loop,
		Channels: []formats.AnimationChannel{
			{
				Bone: "bone",
				Rotation: []formats.Keyframe{
					{Time: 0, Value: [3]float32{0, 0, 0}},
					{Time: 2, Value: [3]float32{90, 0, 0}},
				},
			},
		},
	}
}

func TestSample(t *testing.T) {
	tests := []struct {
		name string
		loop bool
		bone string
		time float32
		want mgl32.Vec3
	}{
		{"midpoint", true, "bone", 1.0, mgl32.Vec3{45, 0, 0}},
		{"wraps past duration", true, "bone", 3.0, mgl32.Vec3{45, 0, 0}},
		{"wraps negative time", true, "bone", -1.0, mgl32.Vec3{45, 0, 0}},
		{"first key", true, "bone", 0, mgl32.Vec3{0, 0, 0}},
		{"quarter", false, "bone", 0.5, mgl32.Vec3{22.5, 0, 0}},
		{"holds last key", false, "bone", 5.0, mgl32.Vec3{90, 0, 0}},
		{"before first key", false, "bone", -1.0, mgl32.Vec3{0, 0, 0}},
		{"unknown bone", true, "other", 1.0, mgl32.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rot := Sample(twoKeyAnimation(tt.loop), tt.bone, tt.time)
			if !rot.ApproxFuncEqual(tt.want, near) {
				t.Errorf("expected %v, got %v", tt.want, rot)
			}
		})
	}
}

func TestSample_WrapMatchesUnwrapped(t *testing.T) {
	anim := twoKeyAnimation(true)
	_, a := Sample(anim, "bone", 1.0)
	_, b := Sample(anim, "bone", 3.0)
	if a != b {
		t.Errorf("expected wrapped sample %v to equal %v", b, a)
	}
}

func TestSample_NilAnimation(t *testing.T) {
	pos, rot := Sample(nil, "bone", 1)
	if pos != (mgl32.Vec3{}) || rot != (mgl32.Vec3{}) {
		t.Errorf("expected zero vectors, got %v %v", pos, rot)
	}
}

func TestSample_UnsortedKeys(t *testing.T) {
	anim := &formats.Animation{
		Duration: 4,
		Channels: []formats.AnimationChannel{
			{
				Bone: "lid",
				Rotation: []formats.Keyframe{
					{Time: 4, Value: [3]float32{0, 40, 0}},
					{Time: 0, Value: [3]float32{0, 0, 0}},
					{Time: 2, Value: [3]float32{0, 10, 0}},
				},
				Position: []formats.Keyframe{
					{Time: 0, Value: [3]float32{0, 0, 0}},
					{Time: 4, Value: [3]float32{8, 0, 0}},
				},
			},
		},
	}

	pos, rot := Sample(anim, "lid", 3)
	if !rot.ApproxFuncEqual(mgl32.Vec3{0, 25, 0}, near) {
		t.Errorf("expected rotation (0,25,0), got %v", rot)
	}
	if !pos.ApproxFuncEqual(mgl32.Vec3{6, 0, 0}, near) {
		t.Errorf("expected position (6,0,0), got %v", pos)
	}
}

func TestBoneTransforms_Bedrock(t *testing.T) {
	geo := &formats.BedrockGeometry{
		Bones: []formats.BedrockBone{
			{Name: "arm", Pivot: [3]float32{0, 16, 0}},
			{Name: "hand", Parent: "arm", Pivot: [3]float32{0, 0, 0}},
		},
	}
	m := BuildBedrock(geo, BuildOptions{})
	anim := &formats.Animation{
		Duration: 1,
		Channels: []formats.AnimationChannel{
			{Bone: "arm", Rotation: []formats.Keyframe{{Time: 0, Value: [3]float32{0, 0, 90}}}},
		},
	}

	mats := BoneTransforms(m, anim, 0, mgl32.Ident4())

	// Rz(-90) about (0,1,0): (1,1,0) goes to (0,0,0).
	got := TransformPoint(mats[0], mgl32.Vec3{1, 1, 0})
	if !got.ApproxFuncEqual(mgl32.Vec3{0, 0, 0}, near) {
		t.Errorf("expected arm point at origin, got %v", got)
	}

	// The child has no keys and inherits the parent's matrix.
	if !mats[1].ApproxFuncEqual(mats[0], near) {
		t.Errorf("expected hand to inherit arm transform, got %v", mats[1])
	}
}

func TestBoneTransforms_OBP(t *testing.T) {
	obp := &formats.OBP{
		Bones: []formats.OBPBone{
			{Name: "lid", Pivot: [3]float32{0, 1, 0}},
			{Name: "base"},
		},
		Animations: []*formats.Animation{{
			Duration: 1,
			Channels: []formats.AnimationChannel{
				{Bone: "lid", Rotation: []formats.Keyframe{{Time: 0, Value: [3]float32{0, 0, 90}}}},
			},
		}},
	}
	m := BuildOBP(obp)

	mats := BoneTransforms(m, m.Animation(), 0, mgl32.Ident4())

	// Rz(+90) about (0,1,0): (1,1,0) goes to (0,2,0).
	got := TransformPoint(mats[0], mgl32.Vec3{1, 1, 0})
	if !got.ApproxFuncEqual(mgl32.Vec3{0, 2, 0}, near) {
		t.Errorf("expected lid point at (0,2,0), got %v", got)
	}
	if !mats[1].ApproxFuncEqual(mgl32.Ident4(), near) {
		t.Errorf("expected identity for unanimated bone, got %v", mats[1])
	}
}

func TestBuildOBP(t *testing.T) {
	obp, err := formats.ParseOBP([]byte("b part 0 0 0\nv 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nf 1/1 2/2 3/3\n"))
	if err != nil {
		t.Fatalf("ParseOBP failed: %v", err)
	}
	m := BuildOBP(obp)

	if m.Format != FormatOBP {
		t.Errorf("expected OBP format, got %v", m.Format)
	}
	if m.FindBone("part") != 0 || m.FindBone("missing") != -1 {
		t.Error("FindBone returned wrong indices")
	}

	buf := m.Interleaved(0)
	if len(buf) != 3*VertexStride {
		t.Fatalf("expected %d floats, got %d", 3*VertexStride, len(buf))
	}
	// Second vertex is (1,0,0) with uv (1,0).
	second := buf[VertexStride : 2*VertexStride]
	want := []float32{1, 0, 0, 1, 0}
	for i := range want {
		if second[i] != want[i] {
			t.Errorf("float %d: expected %v, got %v", i, want[i], second[i])
		}
	}

	var tris int
	m.Triangles(0, func(a, b, c Vertex) {
		tris++
		// Reversed winding: (0,2,1) faces -Z.
		if DominantAxis(FaceNormal(a.Position, b.Position, c.Position)) != AxisNegZ {
			t.Errorf("expected triangle facing -Z")
		}
	})
	if tris != 1 {
		t.Errorf("expected 1 triangle, got %d", tris)
	}
}

func TestDominantAxis(t *testing.T) {
	tests := []struct {
		n    mgl32.Vec3
		want Axis
	}{
		{mgl32.Vec3{0, 0, 2}, AxisPosZ},
		{mgl32.Vec3{0.1, 0, -2}, AxisNegZ},
		{mgl32.Vec3{-1, 0.5, 0}, AxisNegX},
		{mgl32.Vec3{3, 1, 1}, AxisPosX},
		{mgl32.Vec3{0, -1, 0}, AxisNegY},
		{mgl32.Vec3{0, 1, 0}, AxisPosY},
		{mgl32.Vec3{1, 1, 0}, AxisNone},
		{mgl32.Vec3{}, AxisNone},
	}

	for _, tt := range tests {
		if got := DominantAxis(tt.n); got != tt.want {
			t.Errorf("DominantAxis(%v): expected %d, got %d", tt.n, tt.want, got)
		}
	}
}
