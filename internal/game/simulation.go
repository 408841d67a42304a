package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/engine/camera"
	"github.com/Faultbox/voxelcraft/internal/engine/handoff"
	"github.com/Faultbox/voxelcraft/internal/engine/input"
	"github.com/Faultbox/voxelcraft/internal/game/world"
	"github.com/Faultbox/voxelcraft/internal/logger"
)

// gridOffset moves a world-space point into the block grid, where cell i
// spans [i, i+1) on X/Z.
var gridOffset = mgl32.Vec3{0.5, 0, 0.5}

// Controls is the per-tick view of the input devices.
type Controls interface {
	IsKeyPressed(key sdl.Scancode) bool
	IsKeyHeld(key sdl.Scancode) bool
	IsButtonPressed(button uint8) bool
	MouseDelta() (dx, dy int)
}

// Simulation owns the player and edits the world. It runs on the
// simulation goroutine only.
type Simulation struct {
	World   *world.World
	Blocks  *world.BlockTable
	Player  *world.Player
	Camera  *camera.FirstPerson
	Options Options

	Selected    world.BlockID
	Sensitivity float32 // Degrees per pixel

	target      world.RayHit
	hasTarget   bool
	screenshots uint32
	quit        bool

	log *zap.Logger
}

// NewSimulation places a player at spawn in w.
func NewSimulation(w *world.World, blocks *world.BlockTable, spawn mgl32.Vec3, groundLevel float32, opts Options) *Simulation {
	s := &Simulation{
		World:       w,
		Blocks:      blocks,
		Player:      world.NewPlayer(spawn, groundLevel),
		Camera:      camera.NewFirstPerson(opts.FOV),
		Options:     opts,
		Selected:    1,
		Sensitivity: 0.1,
		log:         logger.Named("sim"),
	}
	s.Camera.SetFarForDistance(opts.RenderDistance * world.ChunkSize)
	return s
}

// SelectBlock selects id when it names a placeable block.
func (s *Simulation) SelectBlock(id world.BlockID) {
	if id >= 1 && int(id) < s.Blocks.Len() {
		s.Selected = id
	}
}

// QuitRequested reports whether Escape was pressed.
func (s *Simulation) QuitRequested() bool {
	return s.quit
}

// Tick applies one step of input and physics.
func (s *Simulation) Tick(in Controls, dt float32) {
	s.handleKeys(in)

	dx, dy := in.MouseDelta()
	if dx != 0 || dy != 0 {
		s.Player.Look(float32(dx)*s.Sensitivity, float32(-dy)*s.Sensitivity)
	}

	move := world.MoveInput{
		Forward: in.IsKeyHeld(sdl.SCANCODE_W),
		Back:    in.IsKeyHeld(sdl.SCANCODE_S),
		Left:    in.IsKeyHeld(sdl.SCANCODE_A),
		Right:   in.IsKeyHeld(sdl.SCANCODE_D),
		Jump:    in.IsKeyHeld(sdl.SCANCODE_SPACE),
	}
	s.World.Read(func(v world.BlockView) {
		s.Player.Step(v, s.Blocks, move, dt)
	})

	s.updateTarget()
	if in.IsButtonPressed(input.ButtonLeft) {
		s.Break()
	}
	if in.IsButtonPressed(input.ButtonRight) {
		s.Place()
	}
}

func (s *Simulation) handleKeys(in Controls) {
	if in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		s.quit = true
	}
	if in.IsKeyPressed(sdl.SCANCODE_F1) {
		s.setRenderDistance(s.Options.RenderDistance - RenderDistanceStep)
	}
	if in.IsKeyPressed(sdl.SCANCODE_F2) {
		s.setRenderDistance(s.Options.RenderDistance + RenderDistanceStep)
	}
	if in.IsKeyPressed(sdl.SCANCODE_F3) {
		s.Options.ShowFPS = !s.Options.ShowFPS
		s.log.Info("fps display", zap.Bool("show", s.Options.ShowFPS))
	}
	if in.IsKeyPressed(sdl.SCANCODE_F4) {
		level := "debug"
		if logger.Level() == "debug" {
			level = "info"
		}
		logger.SetLevel(level)
		s.log.Info("options", append(s.Options.Fields(), zap.String("logLevel", level))...)
	}
	if in.IsKeyPressed(sdl.SCANCODE_F12) {
		s.screenshots++
	}
	if in.IsKeyPressed(sdl.SCANCODE_LEFT) {
		s.Selected = s.Blocks.Next(s.Selected, -1)
		s.logSelected()
	}
	if in.IsKeyPressed(sdl.SCANCODE_RIGHT) {
		s.Selected = s.Blocks.Next(s.Selected, 1)
		s.logSelected()
	}
}

func (s *Simulation) setRenderDistance(d float32) {
	s.Options.SetRenderDistance(d)
	s.Camera.SetFarForDistance(s.Options.RenderDistance * world.ChunkSize)
	s.log.Info("render distance",
		zap.Float32("chunks", s.Options.RenderDistance),
		zap.Float32("blocks", s.Options.RenderDistance*world.ChunkSize))
}

func (s *Simulation) logSelected() {
	if def := s.Blocks.Get(s.Selected); def != nil {
		s.log.Info("block selected", zap.String("block", def.Name), zap.Uint16("id", uint16(s.Selected)))
	}
}

// updateTarget casts the view ray and remembers the block under the
// crosshair.
func (s *Simulation) updateTarget() {
	origin := s.Player.Eye().Add(gridOffset)
	dir := s.Player.Front()
	s.World.Read(func(v world.BlockView) {
		s.target, s.hasTarget = world.Raycast(v, origin, dir, world.ReachDistance)
	})
}

// Target returns the block under the crosshair.
func (s *Simulation) Target() (world.RayHit, bool) {
	return s.target, s.hasTarget
}

// Break removes the targeted block.
func (s *Simulation) Break() bool {
	if !s.hasTarget {
		return false
	}
	b := s.target.Block
	if !s.World.SetBlock(b[0], b[1], b[2], world.Air) {
		return false
	}
	s.log.Debug("block broken", zap.Ints("at", b[:]))
	s.hasTarget = false
	return true
}

// Place puts the selected block in the cell in front of the targeted one.
// It refuses cells that are occupied or overlap the player.
func (s *Simulation) Place() bool {
	if !s.hasTarget {
		return false
	}
	p := s.target.Place
	switch {
	case p == s.target.Block:
		return false
	case world.OverlapsBlock(s.Player.Position, p[0], p[1], p[2]):
		s.log.Debug("cannot place into the player", zap.Ints("at", p[:]))
		return false
	case s.Selected < 1 || int(s.Selected) >= s.Blocks.Len():
		return false
	}

	placed := false
	s.World.Edit(func(e world.BlockEditor) {
		if e.At(p[0], p[1], p[2]) != world.Air {
			return
		}
		placed = e.Set(p[0], p[1], p[2], s.Selected)
	})
	if placed {
		s.log.Debug("block placed", zap.Ints("at", p[:]), zap.Uint16("id", uint16(s.Selected)))
	}
	return placed
}

// Snapshot builds the render state for the current tick.
func (s *Simulation) Snapshot(width, height int, t float32) handoff.Snapshot {
	s.Camera.Position = s.Player.Eye()
	s.Camera.Front = s.Player.Front()
	s.Camera.FOV = s.Options.FOV

	return handoff.Snapshot{
		View:           s.Camera.ViewMatrix(),
		Projection:     s.Camera.ProjectionMatrix(width, height),
		Camera:         s.Camera.Position.Add(gridOffset),
		Width:          width,
		Height:         height,
		SelectedBlock:  s.Selected,
		Time:           t,
		RenderDistance: s.Options.RenderDistance,
		Target:         s.target.Block,
		HasTarget:      s.hasTarget,
		Screenshots:    s.screenshots,
	}
}
