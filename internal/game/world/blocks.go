package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/engine/model"
	"github.com/Faultbox/voxelcraft/internal/logger"
	"github.com/Faultbox/voxelcraft/pkg/formats"
)

// BlockID indexes the block table. Air is always 0.
type BlockID uint16

// Air is the empty block.
const Air BlockID = 0

// FoliageName is the block name routed to the foliage pass.
const FoliageName = "Flower"

// RendererKind selects how a dynamic block's tile entity is drawn.
type RendererKind int

const (
	// RendererDefault draws the model in place.
	RendererDefault RendererKind = iota
	// RendererRotator spins the model about its vertical axis.
	RendererRotator
	// RendererAnimated plays the block animation.
	RendererAnimated
)

func (k RendererKind) String() string {
	switch k {
	case RendererRotator:
		return "rotator"
	case RendererAnimated:
		return "animated"
	}
	return "default"
}

// rendererByName maps entity config renderer names; unknown names draw in place.
func rendererByName(name string) RendererKind {
	if name == "FanRenderer" {
		return RendererRotator
	}
	return RendererDefault
}

// BlockDefinition describes one block type.
type BlockDefinition struct {
	Name        string
	Solid       bool // Collides with the player
	Transparent bool // See-through, never hides a neighbour's face
	Translucent bool // Alpha-blended; hides faces shared with the same type
	Dynamic     bool // Drawn as a tile entity instead of baked
	Texture     string
	Frames      int // Animation frames in the texture strip, at least 1
	Model       *model.Model
	Animation   *formats.Animation
	Renderer    RendererKind
}

// Opaque reports whether the block hides the faces of its neighbours.
func (d *BlockDefinition) Opaque() bool {
	return !d.Transparent && !d.Translucent
}

// Foliage reports whether the block is drawn in the foliage pass.
func (d *BlockDefinition) Foliage() bool {
	return d.Name == FoliageName
}

// BlockTable is the block definition table indexed by BlockID.
type BlockTable struct {
	defs []BlockDefinition
}

// NewBlockTable creates a table with Air at id 0 followed by defs.
func NewBlockTable(defs ...BlockDefinition) *BlockTable {
	t := &BlockTable{defs: make([]BlockDefinition, 0, len(defs)+1)}
	t.defs = append(t.defs, BlockDefinition{Name: "Air", Transparent: true, Frames: 1})
	for _, d := range defs {
		if d.Frames < 1 {
			d.Frames = 1
		}
		t.defs = append(t.defs, d)
	}
	return t
}

// Len returns the number of definitions, Air included.
func (t *BlockTable) Len() int {
	return len(t.defs)
}

// Get returns the definition for id, or nil when id is out of range.
func (t *BlockTable) Get(id BlockID) *BlockDefinition {
	if int(id) >= len(t.defs) {
		return nil
	}
	return &t.defs[id]
}

// SetFrames records the animation frame count of a block's texture.
func (t *BlockTable) SetFrames(id BlockID, frames int) {
	if d := t.Get(id); d != nil {
		d.Frames = max(frames, 1)
	}
}

// FindByName returns the id of the first block with the given name.
func (t *BlockTable) FindByName(name string) (BlockID, bool) {
	for i := range t.defs {
		if t.defs[i].Name == name {
			return BlockID(i), true
		}
	}
	return Air, false
}

// MustFind is FindByName for names the caller knows exist; missing names map to Air.
func (t *BlockTable) MustFind(name string) BlockID {
	id, _ := t.FindByName(name)
	return id
}

// Next returns the block after id, wrapping within 1..Len()-1.
func (t *BlockTable) Next(id BlockID, step int) BlockID {
	n := len(t.defs) - 1
	if n < 1 {
		return Air
	}
	i := (int(id) - 1 + step) % n
	if i < 0 {
		i += n
	}
	return BlockID(i + 1)
}

// ModelSource loads the assets referenced by block and entity tables.
type ModelSource interface {
	// BlockModel loads models/<name> as a block shape.
	BlockModel(name string) (*model.Model, error)
	// EntityModel loads a model by data-relative path as a block shape.
	EntityModel(path string) (*model.Model, error)
	// Animation loads a Bedrock animation by data-relative path.
	Animation(path string) (*formats.Animation, error)
}

// LoadBlockTable resolves parsed block rows into definitions. Every row
// must have a loadable model; the first failure is returned.
func LoadBlockTable(rows *formats.BlockTable, src ModelSource) (*BlockTable, error) {
	for _, line := range rows.Skipped {
		logger.Warn("malformed block row ignored", zap.Int("line", line))
	}

	defs := make([]BlockDefinition, 0, len(rows.Rows))
	for _, r := range rows.Rows {
		m, err := src.BlockModel(r.Model)
		if err != nil {
			return nil, fmt.Errorf("block %s: model %s: %w", r.Name, r.Model, err)
		}
		defs = append(defs, BlockDefinition{
			Name:        r.Name,
			Solid:       r.Solid,
			Transparent: r.Transparent,
			Translucent: r.Translucent,
			Dynamic:     r.Dynamic,
			Texture:     r.Texture,
			Model:       m,
		})
	}

	t := NewBlockTable(defs...)
	logger.Info("block table loaded", zap.Int("blocks", t.Len()))
	return t, nil
}

// ApplyEntities applies tile-entity configuration: model overrides, renderer
// kinds and animations. Failures are soft and keep what was loaded before.
// It returns the number of entries applied.
func (t *BlockTable) ApplyEntities(cfg *formats.EntityConfig, src ModelSource) int {
	applied := 0
	for _, e := range cfg.Entries {
		id, ok := t.FindByName(e.Block)
		if !ok {
			logger.Warn("entity config names unknown block",
				zap.String("block", e.Block), zap.Int("line", e.Line))
			continue
		}
		def := &t.defs[id]

		if m, err := src.EntityModel(e.Model); err != nil {
			logger.Warn("entity model not loaded, keeping block model",
				zap.String("block", e.Block), zap.String("model", e.Model), zap.Error(err))
		} else {
			def.Model = m
		}
		def.Renderer = rendererByName(e.Renderer)

		if e.Animation != "" {
			anim, err := src.Animation(e.Animation)
			if err != nil {
				logger.Warn("entity animation not loaded",
					zap.String("block", e.Block), zap.String("animation", e.Animation), zap.Error(err))
			} else {
				def.Animation = anim
				if def.Renderer == RendererDefault {
					def.Renderer = RendererAnimated
				}
			}
		}

		logger.Debug("entity configured",
			zap.String("block", e.Block), zap.Stringer("renderer", def.Renderer))
		applied++
	}
	return applied
}
