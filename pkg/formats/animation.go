package formats

import "sort"

// DefaultAnimationName is the clip name given to imported Bedrock animations.
const DefaultAnimationName = "imported_anim"

// ParseBedrockAnimation reads a Bedrock animation JSON document. The first
// "bones" object in document order maps bone names to channel objects whose
// "rotation" and "position" members are either {"<time>": [x,y,z], ...} or a
// bare [x,y,z] (a single key at t=0). Bones without keys are dropped.
// Duration is the latest key time, or 1.0 when there are no keys.
func ParseBedrockAnimation(data []byte) (*Animation, error) {
	root, err := parseJSONTree(data)
	if root == nil {
		return nil, err
	}

	anim := &Animation{
		Name: DefaultAnimationName,
		Loop: true,
	}

	bones, holder := root.find("bones", jsonObject)
	if loop := holder.member("loop"); loop != nil && loop.kind == jsonBool {
		anim.Loop = loop.boolean
	}

	if bones != nil {
		for _, m := range bones.members {
			if m.value.kind != jsonObject {
				continue
			}
			ch := AnimationChannel{
				Bone:     truncateName(m.key),
				Rotation: parseBedrockKeys(m.value.member("rotation")),
				Position: parseBedrockKeys(m.value.member("position")),
			}
			if len(ch.Rotation) == 0 && len(ch.Position) == 0 {
				continue
			}
			anim.Channels = append(anim.Channels, ch)
		}
	}

	anim.Duration = anim.maxKeyTime()
	if anim.Duration <= 0 {
		anim.Duration = 1.0
	}

	return anim, err
}

func parseBedrockKeys(n *jsonNode) []Keyframe {
	if n == nil {
		return nil
	}
	switch n.kind {
	case jsonArray:
		return []Keyframe{{Time: 0, Value: n.vec3()}}
	case jsonObject:
		keys := make([]Keyframe, 0, len(n.members))
		for _, m := range n.members {
			value := m.value
			// {"post": [x,y,z]} / {"pre": ...} keyframe objects
			if value.kind == jsonObject {
				if post := value.member("post"); post != nil {
					value = post
				} else {
					value = value.member("pre")
				}
			}
			if value == nil || value.kind != jsonArray {
				continue
			}
			keys = append(keys, Keyframe{
				Time:  parseLeadingFloat(m.key),
				Value: value.vec3(),
			})
		}
		sort.SliceStable(keys, func(i, j int) bool { return keys[i].Time < keys[j].Time })
		return keys
	}
	return nil
}
