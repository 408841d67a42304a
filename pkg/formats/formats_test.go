package formats

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "lid", "lid"},
		{"exact", strings.Repeat("a", 63), strings.Repeat("a", 63)},
		{"ascii", strings.Repeat("a", 70), strings.Repeat("a", 63)},
		// 62 bytes then a two-byte rune straddling the limit
		{"split rune", strings.Repeat("a", 62) + "é" + "b", strings.Repeat("a", 62)},
		// 21 three-byte runes fill 63 bytes exactly
		{"rune at limit", strings.Repeat("風", 22), strings.Repeat("風", 21)},
		{"four-byte runes", strings.Repeat("🙂", 20), strings.Repeat("🙂", 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateName(tt.in)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if !utf8.ValidString(got) {
				t.Errorf("expected valid UTF-8, got %q", got)
			}
		})
	}
}

func TestParseOBP_LongUTF8BoneName(t *testing.T) {
	name := strings.Repeat("x", 61) + "ßß"
	obp, err := ParseOBP([]byte("b " + name + " 0 0 0\n"))
	if err != nil {
		t.Fatalf("ParseOBP: %v", err)
	}
	if got := obp.Bones[0].Name; got != strings.Repeat("x", 61)+"ß" {
		t.Errorf("expected name cut before the last rune, got %q", got)
	}
}
