package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestPushKeyboard(t *testing.T) {
	in := New()

	in.Push(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F}})
	in.Push(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_R}})

	if !in.IsKeyPressed(sdl.SCANCODE_F) {
		t.Error("expected F to be pressed")
	}
	if in.IsKeyPressed(sdl.SCANCODE_R) {
		t.Error("auto-repeat should not count as a press")
	}
	if got := len(in.Events()); got != 2 {
		t.Errorf("expected 2 events, got %d", got)
	}
}

func TestPushQuit(t *testing.T) {
	in := New()
	if !in.Push(&sdl.QuitEvent{Type: sdl.QUIT}) {
		t.Error("expected quit event to request exit")
	}
	if in.Events()[0].Type != EventQuit {
		t.Errorf("expected EventQuit, got %v", in.Events()[0].Type)
	}
}

func TestPushMouse(t *testing.T) {
	in := New()

	in.Push(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 10, Y: 20})
	if !in.IsButtonDown(ButtonLeft) {
		t.Error("expected left button down")
	}

	in.Push(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 15, Y: 18, XRel: 5, YRel: -2})
	move := in.Events()[1]
	if move.Type != EventMouseMove || move.DeltaX != 5 || move.DeltaY != -2 {
		t.Errorf("unexpected move event %+v", move)
	}

	in.Push(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 15, Y: 18})
	if in.IsButtonDown(ButtonLeft) {
		t.Error("expected left button released")
	}

	in.Push(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: -1})
	wheel := in.Events()[3]
	if wheel.Type != EventMouseWheel || wheel.Wheel != -1 {
		t.Errorf("unexpected wheel event %+v", wheel)
	}
}

func TestPushWindowResize(t *testing.T) {
	in := New()

	in.Push(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600})
	in.Push(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED})

	events := in.Events()
	if len(events) != 1 {
		t.Fatalf("expected only the resize to be recorded, got %d events", len(events))
	}
	if events[0].Width != 800 || events[0].Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", events[0].Width, events[0].Height)
	}
}
