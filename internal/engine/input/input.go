// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Mouse buttons as reported in Event.Button.
const (
	ButtonLeft   = sdl.BUTTON_LEFT
	ButtonMiddle = sdl.BUTTON_MIDDLE
	ButtonRight  = sdl.BUTTON_RIGHT
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int
	DeltaY int
	Wheel  float32
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events  []Event
	buttons map[uint8]bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		buttons: make(map[uint8]bool),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.Push(event) {
			quit = true
		}
	}
	return quit
}

// Push converts a single SDL event and records it. It returns true for a
// quit request.
func (i *Input) Push(event sdl.Event) bool {
	e, ok := translate(event)
	if !ok {
		return false
	}
	switch e.Type {
	case EventMouseDown:
		i.buttons[e.Button] = true
	case EventMouseUp:
		i.buttons[e.Button] = false
	}
	i.events = append(i.events, e)
	return e.Type == EventQuit
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		ev := Event{Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}
		switch e.Type {
		case sdl.KEYDOWN:
			ev.Type = EventKeyDown
			return ev, true
		case sdl.KEYUP:
			ev.Type = EventKeyUp
			return ev, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DeltaX: int(e.XRel),
			DeltaY: int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		ev := Event{MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			ev.Type = EventMouseDown
			return ev, true
		case sdl.MOUSEBUTTONUP:
			ev.Type = EventMouseUp
			return ev, true
		}

	case *sdl.MouseWheelEvent:
		return Event{Type: EventMouseWheel, Wheel: float32(e.Y)}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame. Auto-repeat
// presses are ignored.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}

// IsButtonDown reports whether a mouse button is currently held.
func (i *Input) IsButtonDown(button uint8) bool {
	return i.buttons[button]
}
