package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/voxelcraft/internal/engine/model"
)

const fanModel = `{"format_version": "1.12.0", "minecraft:geometry": [{
	"description": {"texture_width": 16, "texture_height": 16},
	"bones": [
		{"name": "base", "pivot": [0, 0, 0], "cubes": [{"origin": [-8, 0, -8], "size": [16, 2, 16], "uv": [0, 0]}]},
		{"name": "blade", "pivot": [0, 8, 0], "cubes": [{"origin": [-8, 8, 0], "size": [16, 1, 0], "uv": [0, 0]}]}
	]
}]}`

const spinAnimation = `{"animations": {"animation.fan.spin": {"loop": true, "bones": {
	"blade": {"rotation": {"0.0": [0, 0, 0], "1.0": [0, 360, 0]}}
}}}}`

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "Fan.json")
	anim := filepath.Join(dir, "spin.json")
	out := filepath.Join(dir, "Fan.obp")
	if err := os.WriteFile(in, []byte(fanModel), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(anim, []byte(spinAnimation), 0644); err != nil {
		t.Fatal(err)
	}

	stats, err := convert(in, anim, out)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	// A box is 12 triangles, a plane 4 (two sides).
	if stats.bones != 2 || stats.triangles != 16 || stats.keys != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	m, err := model.LoadOBP(data)
	if err != nil {
		t.Fatalf("LoadOBP: %v", err)
	}
	if m.FindBone("blade") != 1 {
		t.Errorf("expected blade as second bone, got %d", m.FindBone("blade"))
	}
	a := m.Animation()
	if a == nil || !a.Loop {
		t.Fatalf("expected looping clip, got %+v", a)
	}
	if k := a.Channel("blade").Rotation[1].Value; k[1] != -360 {
		t.Errorf("expected negated yaw -360, got %v", k)
	}
}

func TestConvert_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	good := filepath.Join(dir, "Fan.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(good, []byte(fanModel), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   string
		anim string
	}{
		{"missing model", filepath.Join(dir, "nope.json"), ""},
		{"malformed model", bad, ""},
		{"missing animation", good, filepath.Join(dir, "nope.anim.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := convert(tt.in, tt.anim, filepath.Join(dir, "out.obp")); err == nil {
				t.Error("expected error")
			}
		})
	}
}
