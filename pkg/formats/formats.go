// Package formats provides parsers for the voxelcraft asset formats:
// Bedrock-style geometry and animation JSON, the line-based OBP model
// format, and the block/entity definition tables.
package formats

import (
	"errors"
	"unicode/utf8"
)

// Shared format errors.
var (
	ErrEmptyData     = errors.New("empty data")
	ErrMalformedJSON = errors.New("malformed JSON")
)

// Keyframe is a single animation sample.
type Keyframe struct {
	Time  float32    // Seconds
	Value [3]float32 // Euler degrees for rotation, pixels for position
}

// AnimationChannel holds the keyframes targeting one bone.
type AnimationChannel struct {
	Bone     string
	Rotation []Keyframe
	Position []Keyframe
}

// Animation is a named clip made of per-bone channels.
type Animation struct {
	Name     string
	Duration float32 // Seconds, always > 0 after parsing
	Loop     bool
	Channels []AnimationChannel
}

// Channel returns the channel for the given bone, or nil.
func (a *Animation) Channel(bone string) *AnimationChannel {
	if a == nil {
		return nil
	}
	for i := range a.Channels {
		if a.Channels[i].Bone == bone {
			return &a.Channels[i]
		}
	}
	return nil
}

// channelFor returns the channel for bone, appending a new one if needed.
func (a *Animation) channelFor(bone string) *AnimationChannel {
	if ch := a.Channel(bone); ch != nil {
		return ch
	}
	a.Channels = append(a.Channels, AnimationChannel{Bone: bone})
	return &a.Channels[len(a.Channels)-1]
}

// KeyCount returns the total number of keyframes across all channels.
func (a *Animation) KeyCount() int {
	n := 0
	for _, ch := range a.Channels {
		n += len(ch.Rotation) + len(ch.Position)
	}
	return n
}

// maxKeyTime returns the latest keyframe time, or 0 without keys.
func (a *Animation) maxKeyTime() float32 {
	var maxT float32
	for _, ch := range a.Channels {
		for _, k := range ch.Rotation {
			maxT = max(maxT, k.Time)
		}
		for _, k := range ch.Position {
			maxT = max(maxT, k.Time)
		}
	}
	return maxT
}

// MaxNameLength is the longest bone or clip name kept, in bytes; longer
// names are truncated at a character boundary.
const MaxNameLength = 63

func truncateName(s string) string {
	if len(s) <= MaxNameLength {
		return s
	}
	n := MaxNameLength
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
