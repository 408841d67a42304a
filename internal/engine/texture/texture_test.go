package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ftrvxmtrx/tga"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func pixel(a *Array, layer, x, y int) color.NRGBA {
	p := a.LayerPix(layer)[(y*a.Size+x)*4:]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		w, h, want int
	}{
		{16, 16, 1},
		{16, 64, 4},
		{16, 40, 1},
		{32, 16, 1},
		{0, 16, 1},
	}
	for _, tt := range tests {
		if got := FrameCount(tt.w, tt.h); got != tt.want {
			t.Errorf("FrameCount(%d,%d): expected %d, got %d", tt.w, tt.h, tt.want, got)
		}
	}
}

func TestDecode(t *testing.T) {
	want := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	src := solid(32, 64, want)

	tests := []struct {
		name   string
		encode func(buf *bytes.Buffer) error
	}{
		{"png", func(buf *bytes.Buffer) error { return png.Encode(buf, src) }},
		{"tga", func(buf *bytes.Buffer) error { return tga.Encode(buf, src) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf); err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			img, err := Decode(buf.Bytes())
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if img.Rect.Dx() != 32 || img.Rect.Dy() != 64 {
				t.Errorf("expected 32x64, got %v", img.Rect)
			}
			if got := img.NRGBAAt(3, 5); got != want {
				t.Errorf("expected pixel %v, got %v", want, got)
			}
		})
	}
}

func TestDecode_PNGAlpha(t *testing.T) {
	var buf bytes.Buffer
	src := solid(4, 8, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 128}) {
		t.Errorf("unexpected pixel %v", got)
	}

	if _, err := Decode([]byte("not an image")); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestBuildArray(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	// Two-frame strip: green on top, blue below, one red marker row at the top.
	strip := solid(16, 32, green)
	for y := 16; y < 32; y++ {
		for x := 0; x < 16; x++ {
			strip.SetNRGBA(x, y, blue)
		}
	}
	for x := 0; x < 16; x++ {
		strip.SetNRGBA(x, 0, red)
	}

	a := BuildArray([]*image.NRGBA{nil, solid(8, 8, red), strip, nil})

	if a.Size != 16 || a.MaxFrames != 2 || a.Layers != 8 {
		t.Fatalf("expected size 16, 2 frames, 8 layers, got %d, %d, %d", a.Size, a.MaxFrames, a.Layers)
	}
	if a.Frames[1] != 1 || a.Frames[2] != 2 || a.Frames[3] != 1 {
		t.Errorf("unexpected frame counts %v", a.Frames)
	}

	tests := []struct {
		name  string
		layer int
		x, y  int
		want  color.NRGBA
	}{
		{"scaled single frame", a.Layer(1, 0), 15, 15, red},
		{"first frame body", a.Layer(2, 0), 3, 3, green},
		{"marker row flipped to bottom", a.Layer(2, 0), 3, 15, red},
		{"second frame", a.Layer(2, 1), 7, 7, blue},
		{"untextured block", a.Layer(3, 0), 0, 0, color.NRGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pixel(a, tt.layer, tt.x, tt.y); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
