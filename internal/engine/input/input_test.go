package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestInput_KeyTracking(t *testing.T) {
	in := New()
	in.handleKey(true, sdl.SCANCODE_W, false)
	in.handleKey(true, sdl.SCANCODE_A, true)

	tests := []struct {
		name    string
		key     sdl.Scancode
		held    bool
		pressed bool
	}{
		{"fresh press", sdl.SCANCODE_W, true, true},
		{"auto-repeat", sdl.SCANCODE_A, true, false},
		{"untouched", sdl.SCANCODE_S, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := in.IsKeyHeld(tt.key); got != tt.held {
				t.Errorf("held: expected %v, got %v", tt.held, got)
			}
			if got := in.IsKeyPressed(tt.key); got != tt.pressed {
				t.Errorf("pressed: expected %v, got %v", tt.pressed, got)
			}
		})
	}

	in.handleKey(false, sdl.SCANCODE_W, false)
	if in.IsKeyHeld(sdl.SCANCODE_W) {
		t.Error("expected W released")
	}
	if n := len(in.Events()); n != 3 {
		t.Errorf("expected 3 events, got %d", n)
	}
}

func TestInput_Buttons(t *testing.T) {
	in := New()
	in.events = append(in.events, Event{Type: EventMouseDown, Button: ButtonRight})
	if !in.IsButtonPressed(ButtonRight) || in.IsButtonPressed(ButtonLeft) {
		t.Error("expected only the right button pressed")
	}
}
