// Package game implements the simulation loop and wires it to the render
// thread.
package game

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/mainthread/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/config"
	"github.com/Faultbox/voxelcraft/internal/engine/debug"
	"github.com/Faultbox/voxelcraft/internal/engine/handoff"
	"github.com/Faultbox/voxelcraft/internal/engine/input"
	"github.com/Faultbox/voxelcraft/internal/engine/renderer"
	"github.com/Faultbox/voxelcraft/internal/engine/texture"
	"github.com/Faultbox/voxelcraft/internal/engine/window"
	"github.com/Faultbox/voxelcraft/internal/game/world"
	"github.com/Faultbox/voxelcraft/internal/logger"
)

// Title is the window title prefix.
const Title = "Voxelcraft"

// Game owns the window, the simulation and the render thread. Run must be
// called from inside mainthread.Run; every SDL call is marshalled to the
// main thread.
type Game struct {
	cfg      *config.Config
	window   *window.Window
	input    *input.Input
	sim      *Simulation
	renderer *renderer.Renderer
	shared   *handoff.Shared
	thread   *handoff.Thread
	log      *zap.Logger

	title string
}

// New creates the window and the game state. The world and block table
// are ready; the atlas is uploaded by the render thread.
func New(cfg *config.Config, w *world.World, blocks *world.BlockTable, atlas *texture.Array) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		shared: handoff.NewShared(),
		log:    logger.Named("sim"),
	}
	g.log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("chunks", w.Extent()),
		zap.Int("blocks", blocks.Len()),
	)

	err := mainthread.CallErr(func() error {
		var err error
		g.window, err = window.New(window.Config{
			Title:      Title,
			Width:      cfg.Graphics.Width,
			Height:     cfg.Graphics.Height,
			Fullscreen: cfg.Graphics.Fullscreen,
			VSync:      cfg.Graphics.VSync,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	g.input = input.New()
	g.thread = handoff.NewThread(g.shared)

	spawn := mgl32.Vec3{0, cfg.World.SpawnHeight, 0}
	g.sim = NewSimulation(w, blocks, spawn, cfg.World.GroundLevel, NewOptions(cfg))
	g.sim.SelectBlock(world.BlockID(cfg.Game.SelectedBlock))
	g.sim.Sensitivity = cfg.Game.MouseSensitivity

	g.renderer = renderer.New(renderer.Config{
		World:       w,
		Blocks:      blocks,
		Atlas:       atlas,
		Screenshots: debug.NewScreenshotCapture(cfg.Data.Path(cfg.Data.ScreenshotDir), "voxelcraft"),
	}, g.window)

	g.log.Info("game initialized successfully")
	return g, nil
}

// Run hands the GL context to the render thread and runs the simulation
// loop until the window closes or Escape is pressed. It returns once the
// render thread has stopped.
func (g *Game) Run() error {
	if err := mainthread.CallErr(g.window.ReleaseContext); err != nil {
		return err
	}
	if err := g.thread.Start(g.renderer); err != nil {
		return err
	}
	mainthread.Call(func() { g.window.CaptureMouse(true) })
	g.log.Info("controls",
		zap.String("move", "WASD + mouse, space to jump"),
		zap.String("edit", "left click breaks, right click places"),
		zap.String("keys", "F1/F2 render distance, F3 fps, F4 options, F12 screenshot, arrows select block"),
	)
	g.log.Info("options", g.sim.Options.Fields()...)

	start := time.Now()
	last := start
	for {
		var quit bool
		var width, height int
		mainthread.Call(func() {
			quit = g.input.Update()
			width, height = g.window.DrawableSize()
		})
		if quit {
			break
		}

		now := time.Now()
		g.sim.Tick(g.input, float32(now.Sub(last).Seconds()))
		last = now
		if g.sim.QuitRequested() {
			break
		}

		g.shared.Publish(g.sim.Snapshot(width, height, float32(now.Sub(start).Seconds())))
		g.updateTitle()

		select {
		case <-g.thread.Done():
			g.log.Warn("render thread ended early")
			return g.thread.Stop()
		default:
		}
		time.Sleep(g.cfg.World.Tick)
	}

	g.log.Info("stopping render thread")
	return g.thread.Stop()
}

// updateTitle shows the frame rate and selected block in the window title.
func (g *Game) updateTitle() {
	title := Title
	if g.sim.Options.ShowFPS {
		name := ""
		if def := g.sim.Blocks.Get(g.sim.Selected); def != nil {
			name = def.Name
		}
		title = fmt.Sprintf("%s | FPS: %d | Block: %s", Title, g.renderer.FPS(), name)
	}
	if title == g.title {
		return
	}
	g.title = title
	mainthread.CallNonBlock(func() { g.window.SetTitle(title) })
}

// Close releases the window. Call after Run has returned.
func (g *Game) Close() {
	g.log.Info("shutting down")
	mainthread.Call(g.window.Close)
}
