package handoff

import (
	"errors"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/logger"
)

// ErrAlreadyStarted is returned when a Thread is started twice.
var ErrAlreadyStarted = errors.New("render thread already started")

// FrameRenderer is driven by the render thread. Setup runs first on the
// thread (bind the GL context there), Frame once per loop iteration and
// Teardown after the loop ends, even when Setup or Frame failed.
type FrameRenderer interface {
	Setup() error
	Frame(snap Snapshot) error
	Teardown()
}

// Thread runs a FrameRenderer on its own locked OS thread.
type Thread struct {
	shared *Shared
	done   chan struct{}
	err    error
}

// NewThread creates a render thread reading from shared.
func NewThread(shared *Shared) *Thread {
	return &Thread{shared: shared}
}

// Start spawns the render goroutine.
func (t *Thread) Start(r FrameRenderer) error {
	if t.done != nil {
		return ErrAlreadyStarted
	}
	t.done = make(chan struct{})
	go t.run(r)
	return nil
}

func (t *Thread) run(r FrameRenderer) {
	defer close(t.done)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer r.Teardown()

	log := logger.Named("render")
	if err := r.Setup(); err != nil {
		log.Error("render setup failed", zap.Error(err))
		t.err = err
		return
	}
	log.Info("render thread started")

	frames := 0
	for {
		snap, exit := t.shared.Read()
		if exit {
			break
		}
		if err := r.Frame(snap); err != nil {
			log.Error("frame failed", zap.Error(err), zap.Int("frame", frames))
			t.err = err
			return
		}
		frames++
	}
	log.Info("render thread stopped", zap.Int("frames", frames))
}

// Done is closed when the render loop has ended.
func (t *Thread) Done() <-chan struct{} {
	return t.done
}

// Stop requests exit and waits for the render thread to finish its current
// frame and tear down. It returns the error that ended the loop, if any.
func (t *Thread) Stop() error {
	t.shared.RequestExit()
	if t.done == nil {
		return nil
	}
	<-t.done
	return t.err
}
