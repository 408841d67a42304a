// Package handoff passes per-tick camera state from the simulation thread to
// the render thread and coordinates render-thread shutdown.
package handoff

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelcraft/internal/game/world"
)

// Default framebuffer size until the first publish.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Snapshot is the state the render thread needs for one frame.
type Snapshot struct {
	View          mgl32.Mat4
	Projection    mgl32.Mat4
	Camera        mgl32.Vec3 // Eye position in block-grid space
	Width, Height int
	SelectedBlock world.BlockID
	Time          float32 // Seconds since start, drives animations

	RenderDistance float32 // Chunks
	Target         [3]int  // Block under the crosshair, when HasTarget
	HasTarget      bool

	// Screenshots counts capture requests; the renderer captures one frame
	// each time it changes.
	Screenshots uint32
}

// Shared holds the latest snapshot and the exit flag behind one mutex.
// Both sides only copy under the lock.
type Shared struct {
	mu         sync.Mutex
	snap       Snapshot
	shouldExit bool
}

// NewShared returns shared state with identity matrices and the default size.
func NewShared() *Shared {
	return &Shared{snap: Snapshot{
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
		Width:      DefaultWidth,
		Height:     DefaultHeight,
	}}
}

// Publish replaces the snapshot. Called once per simulation tick.
func (s *Shared) Publish(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Read copies out the snapshot and reports whether the render loop should
// exit.
func (s *Shared) Read() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap, s.shouldExit
}

// RequestExit asks the render loop to stop after its current frame.
func (s *Shared) RequestExit() {
	s.mu.Lock()
	s.shouldExit = true
	s.mu.Unlock()
}
