// Package model builds renderable meshes from Bedrock geometry and OBP
// models, and samples their animations.
package model

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Faultbox/voxelcraft/pkg/formats"
)

// Format identifies which loader produced a model.
type Format int

const (
	// FormatBedrock is a hierarchical model with pre-baked, non-indexed bone meshes.
	FormatBedrock Format = iota
	// FormatOBP is a flat model with indexed bone meshes.
	FormatOBP
)

func (f Format) String() string {
	switch f {
	case FormatBedrock:
		return "bedrock"
	case FormatOBP:
		return "obp"
	}
	return "unknown"
}

const (
	// MaxChildren is the number of children linked per bone.
	MaxChildren = 16
	// FallbackTextureSize is used when neither the file nor the caller gives a texture size.
	FallbackTextureSize = 64
	// VertexStride is the float count of an interleaved position+UV vertex.
	VertexStride = 5
)

// Vertex is a mesh vertex in block units.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Bone is a node of a model. Parent and Children are indices into
// Model.Bones; Parent is -1 for roots.
type Bone struct {
	Name       string
	ParentName string
	Parent     int
	Children   []int
	Pivot      mgl32.Vec3 // Block units
	Vertices   []Vertex
	Indices    []uint32 // OBP only; Bedrock vertices are already triangles
}

// Model is a loaded model. The ID keys the renderer's GPU mesh cache.
type Model struct {
	ID            uuid.UUID
	Format        Format
	Bones         []Bone
	TextureWidth  int
	TextureHeight int
	Animations    []*formats.Animation // OBP clips; the first one drives playback
}

// BuildOptions contains options for building a hierarchical model.
type BuildOptions struct {
	// BlockShape shifts centred models into the [0,1] block cell.
	BlockShape bool
	// TextureWidth and TextureHeight are used when the file carries none.
	TextureWidth  int
	TextureHeight int
}

func newModel(format Format, bones int) *Model {
	return &Model{
		ID:     uuid.Must(uuid.NewV7()),
		Format: format,
		Bones:  make([]Bone, 0, bones),
	}
}

// FindBone returns the index of the first bone with the given name, or -1.
func (m *Model) FindBone(name string) int {
	for i := range m.Bones {
		if m.Bones[i].Name == name {
			return i
		}
	}
	return -1
}

// Roots returns the indices of bones without a resolved parent.
func (m *Model) Roots() []int {
	var roots []int
	for i := range m.Bones {
		if m.Bones[i].Parent < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// VertexCount returns the number of vertices across all bones.
func (m *Model) VertexCount() int {
	n := 0
	for i := range m.Bones {
		n += len(m.Bones[i].Vertices)
	}
	return n
}

// Interleaved returns the position+UV buffer of bone b (VertexStride floats per vertex).
func (m *Model) Interleaved(b int) []float32 {
	verts := m.Bones[b].Vertices
	out := make([]float32, 0, len(verts)*VertexStride)
	for _, v := range verts {
		out = append(out, v.Position[0], v.Position[1], v.Position[2], v.TexCoord[0], v.TexCoord[1])
	}
	return out
}

// Animation returns the clip that drives playback, or nil.
func (m *Model) Animation() *formats.Animation {
	if len(m.Animations) == 0 {
		return nil
	}
	return m.Animations[0]
}

// linkParents resolves ParentName into Parent/Children in one pass. Unknown
// parents, and parents whose chain leads back to the bone, leave the bone a
// root; children past MaxChildren keep their parent link but are not listed.
func (m *Model) linkParents() {
	for i := range m.Bones {
		m.Bones[i].Parent = -1
		m.Bones[i].Children = nil
	}
	for i := range m.Bones {
		name := m.Bones[i].ParentName
		if name == "" {
			continue
		}
		p := m.FindBone(name)
		if p < 0 || m.isAncestor(i, p) {
			continue
		}
		m.Bones[i].Parent = p
		if len(m.Bones[p].Children) < MaxChildren {
			m.Bones[p].Children = append(m.Bones[p].Children, i)
		}
	}
}

// isAncestor reports whether a is b or one of b's linked ancestors.
func (m *Model) isAncestor(a, b int) bool {
	for ; b >= 0; b = m.Bones[b].Parent {
		if b == a {
			return true
		}
	}
	return false
}
