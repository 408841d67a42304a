package model

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelcraft/pkg/formats"
)

// near compares two floats with an absolute tolerance.
func near(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}

func cubeGeometry(cube formats.BedrockCube) *formats.BedrockGeometry {
	return &formats.BedrockGeometry{
		TextureWidth:  64,
		TextureHeight: 64,
		Bones: []formats.BedrockBone{
			{Name: "root", Cubes: []formats.BedrockCube{cube}},
		},
	}
}

func TestBuildBedrock_FaceWinding(t *testing.T) {
	tests := []struct {
		name string
		cube formats.BedrockCube
	}{
		{"unit block", formats.BedrockCube{Origin: [3]float32{0, 0, 0}, Size: [3]float32{16, 16, 16}}},
		{"flat slab", formats.BedrockCube{Origin: [3]float32{-8, 0, -8}, Size: [3]float32{16, 2, 16}}},
		{"tall post", formats.BedrockCube{Origin: [3]float32{4, 0, 6}, Size: [3]float32{2, 30, 3}, UV: [2]float32{8, 8}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildBedrock(cubeGeometry(tt.cube), BuildOptions{})
			verts := m.Bones[0].Vertices
			if len(verts) != 36 {
				t.Fatalf("expected 36 vertices, got %d", len(verts))
			}

			center := pixels([3]float32{
				tt.cube.Origin[0] + tt.cube.Size[0]/2,
				tt.cube.Origin[1] + tt.cube.Size[1]/2,
				tt.cube.Origin[2] + tt.cube.Size[2]/2,
			})

			seen := map[Axis]int{}
			m.Triangles(0, func(a, b, c Vertex) {
				n := FaceNormal(a.Position, b.Position, c.Position)
				axis := DominantAxis(n)
				if axis == AxisNone {
					t.Errorf("triangle %v %v %v is not axis-aligned", a.Position, b.Position, c.Position)
					return
				}
				seen[axis]++

				centroid := a.Position.Add(b.Position).Add(c.Position).Mul(1.0 / 3)
				if n.Dot(centroid.Sub(center)) <= 0 {
					t.Errorf("triangle on %v faces inward: normal %v", axis, n)
				}
			})

			for _, axis := range []Axis{AxisPosZ, AxisNegZ, AxisNegX, AxisPosX, AxisNegY, AxisPosY} {
				if seen[axis] != 2 {
					t.Errorf("expected 2 triangles facing %v, got %d", axis, seen[axis])
				}
			}
		})
	}
}

func TestBuildBedrock_Plane(t *testing.T) {
	cube := formats.BedrockCube{Origin: [3]float32{0, 0, 8}, Size: [3]float32{16, 16, 0}}
	m := BuildBedrock(cubeGeometry(cube), BuildOptions{})

	verts := m.Bones[0].Vertices
	if len(verts) != 12 {
		t.Fatalf("expected 12 vertices for a double-sided plane, got %d", len(verts))
	}

	var front, back int
	m.Triangles(0, func(a, b, c Vertex) {
		switch DominantAxis(FaceNormal(a.Position, b.Position, c.Position)) {
		case AxisPosZ:
			front++
		case AxisNegZ:
			back++
		}
	})
	if front != 2 || back != 2 {
		t.Errorf("expected 2 triangles per side, got %d front, %d back", front, back)
	}
}

func TestBuildBedrock_UVs(t *testing.T) {
	cube := formats.BedrockCube{Size: [3]float32{16, 16, 16}}
	m := BuildBedrock(cubeGeometry(cube), BuildOptions{})

	// First triangle is the north face: BL, BR, TR.
	v := m.Bones[0].Vertices
	want := []mgl32.Vec2{
		{32.0 / 64, 1 - 32.0/64}, // BL (u+d+w, v+d+h)
		{16.0 / 64, 1 - 32.0/64}, // BR (u+d, v+d+h)
		{16.0 / 64, 1 - 16.0/64}, // TR (u+d, v+d)
	}
	for i, uv := range want {
		if !v[i].TexCoord.ApproxFuncEqual(uv, near) {
			t.Errorf("vertex %d: expected uv %v, got %v", i, uv, v[i].TexCoord)
		}
	}
}

func TestRotatePoint_ZeroRotation(t *testing.T) {
	points := []mgl32.Vec3{
		{0.1, 0.2, 0.3},
		{-0.5, 1.0 / 3, 7.25},
		{1e-7, -1e7, 0.6180339},
	}
	pivot := mgl32.Vec3{0.5, 0.5, 0.5}

	for _, p := range points {
		got := RotatePoint(p, pivot, mgl32.Vec3{})
		if got != p {
			t.Errorf("expected %v unchanged, got %v", p, got)
		}
	}
}

func TestBuildBedrock_ZeroRotationIdentical(t *testing.T) {
	plain := formats.BedrockCube{Origin: [3]float32{1, 2, 3}, Size: [3]float32{5, 7, 11}, UV: [2]float32{3, 5}}
	rotated := plain
	rotated.Rotation = [3]float32{0, 0, 0}
	rotated.Pivot = [3]float32{8, 8, 8}
	rotated.HasPivot = true

	a := BuildBedrock(cubeGeometry(plain), BuildOptions{}).Bones[0].Vertices
	b := BuildBedrock(cubeGeometry(rotated), BuildOptions{}).Bones[0].Vertices
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vertex %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRotatePoint_AboutPivot(t *testing.T) {
	pivot := mgl32.Vec3{0.5, 0, 0.5}
	got := RotatePoint(mgl32.Vec3{1, 0, 0.5}, pivot, mgl32.Vec3{0, 90, 0})

	// Ry(-90) maps +X to +Z.
	want := mgl32.Vec3{0.5, 0, 1}
	if !got.ApproxFuncEqual(want, near) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBuildBedrock_BlockShift(t *testing.T) {
	tests := []struct {
		name   string
		origin [3]float32
		block  bool
		wantX  float32
		wantZ  float32
	}{
		{"centred block", [3]float32{-8, 0, -8}, true, 0, 0},
		{"corner block", [3]float32{0, 0, 0}, true, 0, 0},
		{"centred on x only", [3]float32{-8, 0, 0}, true, 0, 0},
		{"centred entity", [3]float32{-8, 0, -8}, false, -0.5, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cube := formats.BedrockCube{Origin: tt.origin, Size: [3]float32{16, 16, 16}}
			m := BuildBedrock(cubeGeometry(cube), BuildOptions{BlockShape: tt.block})

			minX, minZ := float32(1000), float32(1000)
			for _, v := range m.Bones[0].Vertices {
				minX = min(minX, v.Position[0])
				minZ = min(minZ, v.Position[2])
			}
			if minX != tt.wantX || minZ != tt.wantZ {
				t.Errorf("expected min (%v, %v), got (%v, %v)", tt.wantX, tt.wantZ, minX, minZ)
			}
		})
	}
}

func TestBuildBedrock_TextureSize(t *testing.T) {
	geo := &formats.BedrockGeometry{Bones: []formats.BedrockBone{{Name: "a"}}}

	m := BuildBedrock(geo, BuildOptions{TextureWidth: 32, TextureHeight: 16})
	if m.TextureWidth != 32 || m.TextureHeight != 16 {
		t.Errorf("expected caller size 32x16, got %dx%d", m.TextureWidth, m.TextureHeight)
	}

	m = BuildBedrock(geo, BuildOptions{})
	if m.TextureWidth != FallbackTextureSize || m.TextureHeight != FallbackTextureSize {
		t.Errorf("expected fallback size, got %dx%d", m.TextureWidth, m.TextureHeight)
	}
}

func TestBuildBedrock_Parents(t *testing.T) {
	geo := &formats.BedrockGeometry{
		Bones: []formats.BedrockBone{
			{Name: "body", Pivot: [3]float32{16, 32, 0}},
			{Name: "head", Parent: "body"},
			{Name: "hat", Parent: "head"},
			{Name: "ghost", Parent: "missing"},
		},
	}
	for i := 0; i < MaxChildren+2; i++ {
		geo.Bones = append(geo.Bones, formats.BedrockBone{Name: "leg", Parent: "body"})
	}

	m := BuildBedrock(geo, BuildOptions{})

	if m.Bones[0].Pivot != (mgl32.Vec3{1, 2, 0}) {
		t.Errorf("expected pivot in block units, got %v", m.Bones[0].Pivot)
	}
	if m.Bones[1].Parent != 0 || m.Bones[2].Parent != 1 {
		t.Errorf("expected head->body and hat->head, got %d and %d", m.Bones[1].Parent, m.Bones[2].Parent)
	}
	if m.Bones[3].Parent != -1 {
		t.Errorf("expected unknown parent to make a root, got %d", m.Bones[3].Parent)
	}
	if len(m.Bones[0].Children) != MaxChildren {
		t.Errorf("expected %d children on body, got %d", MaxChildren, len(m.Bones[0].Children))
	}
	last := len(m.Bones) - 1
	if m.Bones[last].Parent != 0 {
		t.Errorf("expected bone past the cap to keep its parent, got %d", m.Bones[last].Parent)
	}

	roots := m.Roots()
	if len(roots) != 2 || roots[0] != 0 || roots[1] != 3 {
		t.Errorf("expected roots [0 3], got %v", roots)
	}
}

func TestBuildBedrock_ParentCycles(t *testing.T) {
	tests := []struct {
		name      string
		bones     []formats.BedrockBone
		wantRoots []int
	}{
		{
			"self parent",
			[]formats.BedrockBone{{Name: "a", Parent: "a"}},
			[]int{0},
		},
		{
			"two-bone cycle",
			[]formats.BedrockBone{{Name: "a", Parent: "b"}, {Name: "b", Parent: "a"}},
			[]int{1},
		},
		{
			"three-bone cycle",
			[]formats.BedrockBone{{Name: "a", Parent: "c"}, {Name: "b", Parent: "a"}, {Name: "c", Parent: "b"}},
			[]int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildBedrock(&formats.BedrockGeometry{Bones: tt.bones}, BuildOptions{})

			roots := m.Roots()
			if len(roots) != len(tt.wantRoots) || roots[0] != tt.wantRoots[0] {
				t.Errorf("expected roots %v, got %v", tt.wantRoots, roots)
			}
			// Every chain must end at a root within len(Bones) steps.
			for i := range m.Bones {
				steps := 0
				for b := i; b >= 0; b = m.Bones[b].Parent {
					if steps++; steps > len(m.Bones) {
						t.Fatalf("bone %d: parent chain does not terminate", i)
					}
				}
			}
		})
	}
}

func TestLoadBedrock_Partial(t *testing.T) {
	data := []byte(`{"bones": [{"name": "a", "cubes": [{"origin": [0,0,0], "size": [16,16,16], "uv": [0,0]}]}, {"name": "b"`)

	m, err := LoadBedrock(data, BuildOptions{BlockShape: true})
	if !formats.IsPartial(err) {
		t.Fatalf("expected partial error, got %v", err)
	}
	if m == nil || len(m.Bones) != 2 {
		t.Fatalf("expected 2 bones from the partial file, got %+v", m)
	}
	if len(m.Bones[0].Vertices) != 36 {
		t.Errorf("expected first bone complete, got %d vertices", len(m.Bones[0].Vertices))
	}
}
