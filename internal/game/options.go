package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/config"
	"github.com/Faultbox/voxelcraft/internal/game/world"
)

// Option limits.
const (
	MinRenderDistance  = 2
	MaxRenderDistance  = 32
	RenderDistanceStep = 2

	MinFOV = 30
	MaxFOV = 120
)

// Options are the view settings changed at runtime.
type Options struct {
	RenderDistance float32 // Chunks
	FOV            float32 // Degrees
	VSync          bool
	ShowFPS        bool
}

// NewOptions returns options initialised from the config, clamped.
func NewOptions(cfg *config.Config) Options {
	o := Options{VSync: cfg.Graphics.VSync, ShowFPS: cfg.Game.ShowFPS}
	o.SetRenderDistance(cfg.Game.RenderDistance)
	o.SetFOV(cfg.Game.FOV)
	return o
}

// SetRenderDistance sets the render distance, clamped to 2..32 chunks.
func (o *Options) SetRenderDistance(d float32) {
	o.RenderDistance = min(max(d, MinRenderDistance), MaxRenderDistance)
}

// SetFOV sets the field of view, clamped to 30..120 degrees.
func (o *Options) SetFOV(fov float32) {
	o.FOV = min(max(fov, MinFOV), MaxFOV)
}

// Fields returns the options as log fields.
func (o Options) Fields() []zap.Field {
	return []zap.Field{
		zap.Float32("renderDistance", o.RenderDistance),
		zap.Float32("renderBlocks", o.RenderDistance*world.ChunkSize),
		zap.Float32("fov", o.FOV),
		zap.Bool("vsync", o.VSync),
		zap.Bool("showFPS", o.ShowFPS),
	}
}
