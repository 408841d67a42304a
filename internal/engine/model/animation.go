package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelcraft/pkg/formats"
)

// Sample returns the position and rotation of bone at time t (seconds).
// Looping clips wrap t into [0, Duration). Keys need not be sorted: the
// bracketing pair is the latest key at or before t and the earliest key at
// or after t. Past the last key the last key is held. A nil animation or an
// unknown bone yields zero vectors.
func Sample(anim *formats.Animation, bone string, t float32) (pos, rot mgl32.Vec3) {
	ch := anim.Channel(bone)
	if ch == nil {
		return pos, rot
	}
	t = wrapTime(anim, t)
	return interpolateKeys(ch.Position, t), interpolateKeys(ch.Rotation, t)
}

// wrapTime applies the clip's loop mode to t.
func wrapTime(anim *formats.Animation, t float32) float32 {
	if !anim.Loop || anim.Duration <= 0 {
		return t
	}
	t = math32.Mod(t, anim.Duration)
	if t < 0 {
		t += anim.Duration
	}
	return t
}

// interpolateKeys lerps between the keys bracketing t.
func interpolateKeys(keys []formats.Keyframe, t float32) mgl32.Vec3 {
	prev, next := -1, -1
	for i, k := range keys {
		if k.Time <= t && (prev < 0 || k.Time >= keys[prev].Time) {
			prev = i
		}
		if k.Time >= t && (next < 0 || k.Time < keys[next].Time) {
			next = i
		}
	}

	switch {
	case prev < 0 && next < 0:
		return mgl32.Vec3{}
	case prev < 0:
		return keys[next].Value
	case next < 0:
		return keys[prev].Value
	}

	k0, k1 := keys[prev], keys[next]
	span := k1.Time - k0.Time
	if span <= 0 {
		return k0.Value
	}
	f := (t - k0.Time) / span
	a, b := mgl32.Vec3(k0.Value), mgl32.Vec3(k1.Value)
	return a.Add(b.Sub(a).Mul(f))
}
