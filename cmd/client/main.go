// Package main is the entry point for the Voxelcraft client.
package main

import (
	"fmt"
	"os"

	"github.com/gopxl/mainthread/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/assets"
	"github.com/Faultbox/voxelcraft/internal/config"
	"github.com/Faultbox/voxelcraft/internal/game"
	"github.com/Faultbox/voxelcraft/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Voxelcraft ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	code := 0
	// SDL must own the process main thread; the game runs beside it.
	mainthread.Run(func() {
		code = run(cfg)
	})
	if code != 0 {
		logger.Sync()
		os.Exit(code)
	}
	logger.Info("game closed normally")
}

func run(cfg *config.Config) int {
	am := assets.NewManager(cfg.Data.Root, assets.Layout{
		Models:   cfg.Data.ModelsDir,
		Textures: cfg.Data.TexturesDir,
	})
	defer am.Close()

	blocks, atlas, err := game.LoadBlocks(cfg, am)
	if err != nil {
		logger.Fatal("failed to load blocks", zap.String("data", cfg.Data.Root), zap.Error(err))
	}
	w := game.GenerateWorld(cfg.World, blocks)

	g, err := game.New(cfg, w, blocks, atlas)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		return 1
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		return 1
	}
	return 0
}
