// Package texture decodes block textures and packs them into a texture array.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/ftrvxmtrx/tga"
	xdraw "golang.org/x/image/draw"
)

// MinLayerSize is the smallest edge of a texture array layer.
const MinLayerSize = 16

// pngMagic starts every PNG file. TGA has no signature, so anything else is
// handed to the TGA decoder.
var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// Decode decodes a PNG or TGA image into straight-alpha RGBA.
func Decode(data []byte) (*image.NRGBA, error) {
	var img image.Image
	var err error
	if bytes.HasPrefix(data, pngMagic) {
		img, err = png.Decode(bytes.NewReader(data))
	} else {
		img, err = tga.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n, nil
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst, nil
}

// FrameCount returns the number of square animation frames stacked in a
// texture: h/w when the height is a larger multiple of the width, else 1.
func FrameCount(w, h int) int {
	if w > 0 && h > w && h%w == 0 {
		return h / w
	}
	return 1
}

// Array is a CPU-side texture array: MaxFrames layers per block id, the
// first group belonging to id 1. Pix holds Layers square RGBA layers of
// Size×Size, each flipped for OpenGL's bottom-up rows.
type Array struct {
	Size      int
	MaxFrames int
	Layers    int
	Frames    []int // Per block id, 1 for id 0 and blocks without a texture
	Pix       []byte
}

// Layer returns the layer index of a block's animation frame.
func (a *Array) Layer(id, frame int) int {
	return (id-1)*a.MaxFrames + frame
}

// LayerPix returns the pixels of one layer.
func (a *Array) LayerPix(layer int) []byte {
	n := a.Size * a.Size * 4
	return a.Pix[layer*n : (layer+1)*n]
}

// BuildArray packs per-block images (index = block id, nil for none) into
// an array. Layers are as large as the widest texture and every frame is
// scaled to it with nearest-neighbour sampling.
func BuildArray(images []*image.NRGBA) *Array {
	a := &Array{
		Size:      MinLayerSize,
		MaxFrames: 1,
		Frames:    make([]int, len(images)),
	}
	for id, img := range images {
		a.Frames[id] = 1
		if id == 0 || img == nil {
			continue
		}
		w, h := img.Rect.Dx(), img.Rect.Dy()
		a.Size = max(a.Size, w)
		a.Frames[id] = FrameCount(w, h)
		a.MaxFrames = max(a.MaxFrames, a.Frames[id])
	}

	a.Layers = len(images) * a.MaxFrames
	a.Pix = make([]byte, a.Layers*a.Size*a.Size*4)

	layer := image.NewNRGBA(image.Rect(0, 0, a.Size, a.Size))
	for id, img := range images {
		if id == 0 || img == nil {
			continue
		}
		b := img.Rect
		frameH := b.Dy() / a.Frames[id]
		for f := 0; f < a.Frames[id]; f++ {
			src := image.Rect(b.Min.X, b.Min.Y+f*frameH, b.Max.X, b.Min.Y+(f+1)*frameH)
			xdraw.NearestNeighbor.Scale(layer, layer.Rect, img, src, xdraw.Src, nil)
			flipInto(a.LayerPix(a.Layer(id, f)), layer)
		}
	}
	return a
}

// flipInto copies img into dst with the rows in reverse order.
func flipInto(dst []byte, img *image.NRGBA) {
	h := img.Rect.Dy()
	row := img.Rect.Dx() * 4
	for y := 0; y < h; y++ {
		copy(dst[(h-1-y)*row:(h-y)*row], img.Pix[y*img.Stride:y*img.Stride+row])
	}
}
