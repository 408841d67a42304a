package formats

import "testing"

func TestParseBlockTable(t *testing.T) {
	data := []byte(`# Name Solid Transp Transluc Dynamic Texture [Model]
Grass  1 0 0 0 grass
Stone  1 0 0 0 stone cube
Glass  1 1 1 0 glass

Flower 0 1 0 0 flower cross
Broken 1 0
Fan    1 1 0 1 fan
Bad    x 0 0 0 bad
`)

	table, err := ParseBlockTable(data)
	if err != nil {
		t.Fatalf("ParseBlockTable failed: %v", err)
	}

	if len(table.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(table.Rows))
	}
	if len(table.Skipped) != 2 || table.Skipped[0] != 7 || table.Skipped[1] != 9 {
		t.Errorf("expected skipped lines [7 9], got %v", table.Skipped)
	}

	tests := []struct {
		row         int
		name        string
		solid       bool
		transparent bool
		translucent bool
		dynamic     bool
		texture     string
		model       string
	}{
		{0, "Grass", true, false, false, false, "grass", "grass"},
		{1, "Stone", true, false, false, false, "stone", "cube"},
		{2, "Glass", true, true, true, false, "glass", "glass"},
		{3, "Flower", false, true, false, false, "flower", "cross"},
		{4, "Fan", true, true, false, true, "fan", "fan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := table.Rows[tt.row]
			if r.Name != tt.name {
				t.Errorf("expected name %s, got %s", tt.name, r.Name)
			}
			if r.Solid != tt.solid || r.Transparent != tt.transparent ||
				r.Translucent != tt.translucent || r.Dynamic != tt.dynamic {
				t.Errorf("unexpected flags %+v", r)
			}
			if r.Texture != tt.texture || r.Model != tt.model {
				t.Errorf("expected texture/model %s/%s, got %s/%s", tt.texture, tt.model, r.Texture, r.Model)
			}
		})
	}
}

func TestParseEntityConfig(t *testing.T) {
	data := []byte(`# Block Renderer Model
@ orphan.json
Chest DefaultRenderer chest.obp
Fan FanRenderer fan.json
+ blade.json
Door DefaultRenderer door.json
@ door_open.json
Short Renderer
`)

	cfg, err := ParseEntityConfig(data)
	if err != nil {
		t.Fatalf("ParseEntityConfig failed: %v", err)
	}

	if len(cfg.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(cfg.Entries))
	}
	if cfg.Entries[0].Block != "Chest" || cfg.Entries[0].Animation != "" {
		t.Errorf("unexpected first entry %+v", cfg.Entries[0])
	}
	if cfg.Entries[1].Renderer != "FanRenderer" || cfg.Entries[1].Model != "fan.json" {
		t.Errorf("unexpected fan entry %+v", cfg.Entries[1])
	}
	if cfg.Entries[2].Animation != "door_open.json" {
		t.Errorf("expected door animation, got %q", cfg.Entries[2].Animation)
	}
	if cfg.Entries[2].Line != 6 {
		t.Errorf("expected door on line 6, got %d", cfg.Entries[2].Line)
	}
}
