package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/assets"
	"github.com/Faultbox/voxelcraft/internal/config"
	"github.com/Faultbox/voxelcraft/internal/engine/texture"
	"github.com/Faultbox/voxelcraft/internal/game/world"
	"github.com/Faultbox/voxelcraft/internal/logger"
	"github.com/Faultbox/voxelcraft/pkg/formats"
)

// LoadBlocks reads the block table, applies the tile-entity configuration
// and builds the texture array. A block whose model cannot be loaded is an
// error; a missing or broken entity file only logs a warning.
func LoadBlocks(cfg *config.Config, am *assets.Manager) (*world.BlockTable, *texture.Array, error) {
	data, err := am.Load(cfg.Data.BlocksFile)
	if err != nil {
		return nil, nil, err
	}
	rows, err := formats.ParseBlockTable(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", cfg.Data.BlocksFile, err)
	}
	blocks, err := world.LoadBlockTable(rows, am)
	if err != nil {
		return nil, nil, err
	}

	applyEntityFile(cfg.Data.EntitiesFile, blocks, am)

	names := make([]string, blocks.Len())
	for id := 1; id < blocks.Len(); id++ {
		names[id] = blocks.Get(world.BlockID(id)).Texture
	}
	atlas := am.BlockAtlas(names)
	for id, n := range atlas.Frames {
		blocks.SetFrames(world.BlockID(id), n)
	}
	logger.Info("block textures loaded",
		zap.Int("layers", atlas.Layers), zap.Int("size", atlas.Size), zap.Int("maxFrames", atlas.MaxFrames))
	return blocks, atlas, nil
}

func applyEntityFile(path string, blocks *world.BlockTable, am *assets.Manager) {
	data, err := am.Load(path)
	if err != nil {
		logger.Warn("no tile-entity config", zap.String("path", path), zap.Error(err))
		return
	}
	entities, err := formats.ParseEntityConfig(data)
	if err != nil {
		logger.Warn("tile-entity config not parsed", zap.String("path", path), zap.Error(err))
		return
	}
	n := blocks.ApplyEntities(entities, am)
	logger.Info("tile entities configured", zap.Int("entries", n))
}

// GenerateWorld allocates the world and fills it with the configured
// generator.
func GenerateWorld(cfg config.WorldConfig, blocks *world.BlockTable) *world.World {
	w := world.New(cfg.Chunks)
	if cfg.Generator == config.GeneratorTerrain {
		world.GenerateTerrain(w, blocks, cfg.Seed)
	} else {
		world.GenerateFlat(w, blocks)
	}
	return w
}
