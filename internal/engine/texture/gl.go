package texture

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Upload creates a GL_TEXTURE_2D_ARRAY from a, with mipmaps and
// nearest filtering. Must run on the thread that owns the GL context.
func Upload(a *Array) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, tex)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA8,
		int32(a.Size), int32(a.Size), int32(a.Layers), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(a.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D_ARRAY)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return tex
}

// Delete frees a texture created by Upload.
func Delete(tex uint32) {
	if tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}
