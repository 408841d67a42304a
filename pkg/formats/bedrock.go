// Package formats provides parsers for the voxelcraft asset formats.
// Bedrock geometry parser (Blockbench "bedrock" model export).
package formats

import "errors"

// MaxBedrockBones is the bone capacity of a hierarchical model. Bones past
// the cap are ignored.
const MaxBedrockBones = 64

// BedrockCube is one box (or plane, when a size component is zero) of a bone.
type BedrockCube struct {
	Origin   [3]float32 // Minimum corner, pixels
	Size     [3]float32 // Extent, pixels
	UV       [2]float32 // Top-left of the box UV layout, texels
	Rotation [3]float32 // Euler degrees, applied X then Y then Z
	Pivot    [3]float32 // Rotation pivot, pixels (valid when HasPivot)
	HasPivot bool       // False means the bone pivot is used
}

// BedrockBone is a named node of the geometry with its cubes.
type BedrockBone struct {
	Name   string
	Parent string     // Empty for roots
	Pivot  [3]float32 // Pixels
	Cubes  []BedrockCube
}

// BedrockGeometry is the subset of a Bedrock geometry file the engine reads.
type BedrockGeometry struct {
	TextureWidth  int // 0 when the file does not say
	TextureHeight int
	Bones         []BedrockBone
}

// ParseBedrockGeometry extracts texture size and bones from a Bedrock
// geometry JSON document. Only the keys the engine consumes are read:
// texture_width/texture_height, the first "bones" array in document order,
// and per bone name, parent, pivot and cubes. Missing keys become zero
// values. On malformed input the bones read before the error are returned
// along with an error wrapping ErrMalformedJSON.
func ParseBedrockGeometry(data []byte) (*BedrockGeometry, error) {
	root, err := parseJSONTree(data)
	if root == nil {
		return nil, err
	}

	geo := &BedrockGeometry{
		TextureWidth:  int(findNumber(root, "texture_width", "texturewidth")),
		TextureHeight: int(findNumber(root, "texture_height", "textureheight")),
	}

	bones, _ := root.find("bones", jsonArray)
	if bones == nil {
		return geo, err
	}

	for _, b := range bones.items {
		if len(geo.Bones) >= MaxBedrockBones {
			break
		}
		if b.kind != jsonObject {
			continue
		}
		geo.Bones = append(geo.Bones, parseBedrockBone(b))
	}

	return geo, err
}

func parseBedrockBone(n *jsonNode) BedrockBone {
	bone := BedrockBone{
		Name:   truncateName(n.member("name").text()),
		Parent: truncateName(n.member("parent").text()),
		Pivot:  n.member("pivot").vec3(),
	}

	cubes := n.member("cubes")
	if cubes == nil || cubes.kind != jsonArray {
		return bone
	}
	for _, c := range cubes.items {
		if c.kind != jsonObject {
			continue
		}
		cube := BedrockCube{
			Origin:   c.member("origin").vec3(),
			Size:     c.member("size").vec3(),
			UV:       c.member("uv").vec2(),
			Rotation: c.member("rotation").vec3(),
		}
		if p := c.member("pivot"); p != nil {
			cube.Pivot = p.vec3()
			cube.HasPivot = true
		}
		bone.Cubes = append(bone.Cubes, cube)
	}
	return bone
}

// findNumber returns the first numeric member matching any of keys, or 0.
func findNumber(root *jsonNode, keys ...string) float32 {
	for _, key := range keys {
		if v, _ := root.find(key, jsonNumber); v != nil {
			return v.float()
		}
	}
	return 0
}

// IsPartial reports whether err came from truncated or malformed JSON whose
// partial result is still usable.
func IsPartial(err error) bool {
	return errors.Is(err, ErrMalformedJSON)
}
