// Package renderer draws the voxel world on the render thread.
package renderer

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/engine/debug"
	"github.com/Faultbox/voxelcraft/internal/engine/handoff"
	"github.com/Faultbox/voxelcraft/internal/engine/shader"
	"github.com/Faultbox/voxelcraft/internal/engine/terrain"
	"github.com/Faultbox/voxelcraft/internal/engine/texture"
	"github.com/Faultbox/voxelcraft/internal/game/world"
	"github.com/Faultbox/voxelcraft/internal/logger"
)

// SkyColor is the clear colour.
var SkyColor = mgl32.Vec3{0.53, 0.81, 0.92}

// crosshair is two NDC line segments.
var crosshair = []float32{
	-0.02, 0, 0, 0.02, 0, 0,
	0, -0.03, 0, 0, 0.03, 0,
}

// Surface is the window side of the render thread.
type Surface interface {
	MakeCurrent() error
	SwapBuffers()
}

// Config holds renderer configuration.
type Config struct {
	World       *world.World
	Blocks      *world.BlockTable
	Atlas       *texture.Array
	Screenshots *debug.ScreenshotCapture
}

// Renderer draws world chunks and tile entities. All methods except FPS run
// on the render thread.
type Renderer struct {
	config  Config
	surface Surface
	log     *zap.Logger

	blockProgram *shader.Program
	lineProgram  *shader.Program
	atlasTex     uint32
	animFrames   []int32

	baker    *terrain.Baker
	chunks   []chunkMesh
	entities entityMeshes

	crosshairBuf gpuBuffer
	outlineBuf   gpuBuffer
	outlineAt    [3]int

	lastScreenshot uint32
	frames         int
	fpsSince       time.Time
	fps            atomic.Int32
}

// New creates a renderer. No GL calls are made until Setup.
func New(cfg Config, surface Surface) *Renderer {
	return &Renderer{
		config:   cfg,
		surface:  surface,
		log:      logger.Named("renderer"),
		chunks:   make([]chunkMesh, len(cfg.World.Chunks())),
		entities: make(entityMeshes),
	}
}

// FPS returns the frame rate measured over the last second.
func (r *Renderer) FPS() int {
	return int(r.fps.Load())
}

// Setup binds the GL context to the calling thread and creates GPU
// resources.
func (r *Renderer) Setup() error {
	if err := r.surface.MakeCurrent(); err != nil {
		return err
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], 1.0)

	var err error
	if r.blockProgram, err = shader.NewProgram("block", blockVertexShader, blockFragmentShader); err != nil {
		return err
	}
	if r.lineProgram, err = shader.NewProgram("line", lineVertexShader, lineFragmentShader); err != nil {
		return err
	}

	atlas := r.config.Atlas
	r.atlasTex = texture.Upload(atlas)
	r.animFrames = make([]int32, MaxAnimatedBlocks)
	for id, n := range atlas.Frames {
		if id < MaxAnimatedBlocks {
			r.animFrames[id] = int32(n)
		}
	}
	r.log.Debug("block atlas uploaded",
		zap.Int("size", atlas.Size),
		zap.Int("layers", atlas.Layers),
		zap.Int("maxFrames", atlas.MaxFrames),
	)

	r.crosshairBuf.uploadLines(crosshair)
	r.baker = terrain.NewBaker(r.config.Blocks, r)
	r.fpsSince = time.Now()
	return nil
}

// Upload implements terrain.Uploader.
func (r *Renderer) Upload(chunk *world.Chunk, layer world.Layer, floats []float32) error {
	idx := chunk.Index(r.config.World.Extent())
	if idx < 0 || idx >= len(r.chunks) {
		return fmt.Errorf("chunk (%d,%d): %w", chunk.CX, chunk.CZ, terrain.ErrChunkOutOfRange)
	}
	r.chunks[idx].layers[layer].upload(floats, true)
	return nil
}

// Frame draws one frame from snap.
func (r *Renderer) Frame(snap handoff.Snapshot) error {
	gl.Viewport(0, 0, int32(snap.Width), int32(snap.Height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := r.blockProgram
	p.Use()
	p.SetMat4("view", (*[16]float32)(&snap.View))
	p.SetMat4("projection", (*[16]float32)(&snap.Projection))
	p.SetFloat("time", snap.Time)
	p.SetInts("animFrames", r.animFrames)
	p.SetInt("maxFrames", int32(r.config.Atlas.MaxFrames))
	p.SetInt("blockTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, r.atlasTex)

	visible, err := r.prepareChunks(snap)
	if err != nil {
		return err
	}

	gl.DepthMask(true)
	r.drawLayer(visible, world.LayerOpaque)

	gl.Disable(gl.CULL_FACE)
	r.drawLayer(visible, world.LayerFoliage)
	r.drawTileEntities(visible, snap.Time)
	gl.Enable(gl.CULL_FACE)

	gl.DepthMask(false)
	r.drawLayer(visible, world.LayerTransparent)
	gl.DepthMask(true)

	if snap.HasTarget {
		r.drawOutline(snap)
	}
	r.drawCrosshair()

	if snap.Screenshots != r.lastScreenshot {
		r.lastScreenshot = snap.Screenshots
		r.capture(snap.Width, snap.Height)
	}

	r.surface.SwapBuffers()
	r.countFrame()
	return nil
}

// prepareChunks returns the chunks within render distance, rebaking the
// dirty ones first.
func (r *Renderer) prepareChunks(snap handoff.Snapshot) ([]*world.Chunk, error) {
	all := r.config.World.Chunks()
	visible := make([]*world.Chunk, 0, len(all))
	for i := range all {
		c := &all[i]
		if !ChunkVisible(c, snap.Camera[0], snap.Camera[2], snap.RenderDistance) {
			continue
		}
		if c.NeedsRebuild.Load() {
			if err := r.baker.Rebuild(r.config.World, c.CX, c.CZ); err != nil {
				return nil, err
			}
		}
		visible = append(visible, c)
	}
	return visible, nil
}

func (r *Renderer) drawLayer(visible []*world.Chunk, layer world.Layer) {
	extent := r.config.World.Extent()
	for _, c := range visible {
		if c.VertexCounts[layer] == 0 {
			continue
		}
		x, y, z := ChunkOffset(c)
		m := mgl32.Translate3D(x, y, z)
		r.blockProgram.SetMat4("model", (*[16]float32)(&m))
		r.chunks[c.Index(extent)].layers[layer].draw(gl.TRIANGLES)
	}
}

// drawTileEntities draws every dynamic block of the visible chunks with its
// own model matrix. The block type is a constant attribute since entity
// meshes are shared between block types.
func (r *Renderer) drawTileEntities(visible []*world.Chunk, t float32) {
	for _, c := range visible {
		for _, te := range c.TileEntities {
			def := r.config.Blocks.Get(te.Type)
			if def == nil || def.Model == nil {
				continue
			}
			mesh := r.entities.get(def.Model)
			base := TileEntityMatrix(c.CX, c.CZ, te, def.Renderer, t)
			pose := TileEntityPose(def, base, t)
			gl.VertexAttrib1f(2, float32(te.Type))
			for i := range mesh.bones {
				r.blockProgram.SetMat4("model", (*[16]float32)(&pose[i]))
				mesh.bones[i].draw(gl.TRIANGLES)
			}
		}
	}
}

func (r *Renderer) drawOutline(snap handoff.Snapshot) {
	if snap.Target != r.outlineAt || r.outlineBuf.count == 0 {
		r.outlineAt = snap.Target
		r.outlineBuf.uploadLines(debug.BlockOutline(snap.Target[0], snap.Target[1], snap.Target[2]))
	}
	mvp := snap.Projection.Mul4(snap.View)
	r.lineProgram.Use()
	r.lineProgram.SetMat4("mvp", (*[16]float32)(&mvp))
	r.lineProgram.SetVec4("color", 0, 0, 0, 1)
	r.outlineBuf.draw(gl.LINES)
}

func (r *Renderer) drawCrosshair() {
	ident := mgl32.Ident4()
	gl.Disable(gl.DEPTH_TEST)
	r.lineProgram.Use()
	r.lineProgram.SetMat4("mvp", (*[16]float32)(&ident))
	r.lineProgram.SetVec4("color", 1, 1, 1, 1)
	r.crosshairBuf.draw(gl.LINES)
	gl.Enable(gl.DEPTH_TEST)
}

// capture reads the back buffer and writes it to disk. Failures are logged.
func (r *Renderer) capture(width, height int) {
	if r.config.Screenshots == nil || width <= 0 || height <= 0 {
		return
	}
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := r.config.Screenshots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		r.log.Error("screenshot failed", zap.Error(err))
		return
	}
	r.log.Info("screenshot saved", zap.String("path", path))
}

func (r *Renderer) countFrame() {
	r.frames++
	if elapsed := time.Since(r.fpsSince); elapsed >= time.Second {
		r.fps.Store(int32(float64(r.frames) / elapsed.Seconds()))
		r.frames = 0
		r.fpsSince = time.Now()
	}
}

// Teardown frees GPU resources.
func (r *Renderer) Teardown() {
	r.log.Info("closing renderer")
	for i := range r.chunks {
		for l := range r.chunks[i].layers {
			r.chunks[i].layers[l].delete()
		}
	}
	r.entities.deleteAll()
	r.crosshairBuf.delete()
	r.outlineBuf.delete()
	texture.Delete(r.atlasTex)
	if r.blockProgram != nil {
		r.blockProgram.Delete()
	}
	if r.lineProgram != nil {
		r.lineProgram.Delete()
	}
}
