package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBlockOutline(t *testing.T) {
	v := BlockOutline(2, 3, 4)
	if len(v) != 24*3 {
		t.Fatalf("expected 72 floats, got %d", len(v))
	}

	minX, maxX := v[0], v[0]
	minY, maxY := v[1], v[1]
	for i := 0; i < len(v); i += 3 {
		minX, maxX = min(minX, v[i]), max(maxX, v[i])
		minY, maxY = min(minY, v[i+1]), max(maxY, v[i+1])
	}
	if minX >= 1.5 || maxX <= 2.5 {
		t.Errorf("expected X span around [1.5, 2.5], got [%v, %v]", minX, maxX)
	}
	if minY >= 3 || maxY <= 4 {
		t.Errorf("expected Y span around [3, 4], got [%v, %v]", minY, maxY)
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "voxelcraft")
	sc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	pixels := make([]byte, 4*2*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}
	name, err := sc.CaptureFromPixels(pixels, 4, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if !strings.HasSuffix(name, "voxelcraft_2025-01-02_03-04-05.000.webp") {
		t.Errorf("unexpected filename %q", name)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("reading screenshot: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WEBP")) {
		t.Errorf("expected a RIFF/WEBP file, got header %q", data[:12])
	}

	if _, err := sc.CaptureFromPixels(pixels[:5], 4, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}
