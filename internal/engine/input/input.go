// Package input translates SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventWheel
)

// Pointer buttons. Touch fingers report ButtonLeft.
const (
	ButtonLeft  = sdl.BUTTON_LEFT
	ButtonRight = sdl.BUTTON_RIGHT
)

// Event represents a processed input event. Pointer positions are in
// window coordinates for both mouse and touch.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	X, Y   float32
	DX, DY float32
	Button uint8
	Wheel  float32
	Touch  bool
}

// Input handles all input processing.
type Input struct {
	events        []Event
	width, height float32
}

// New creates a new input handler for a window of the given size.
func New(width, height int) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		width:  float32(width),
		height: float32(height),
	}
}

// Update polls SDL events and translates them.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := i.Translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, e)
		if e.Type == EventQuit {
			quit = true
		}
	}
	return quit
}

// Translate converts one SDL event. Events the viewer does not use, and
// mouse events SDL synthesizes from touches, are dropped.
func (i *Input) Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.width, i.height = float32(e.Data1), float32(e.Data2)
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		switch e.Type {
		case sdl.KEYDOWN:
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		case sdl.KEYUP:
			return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		if e.Which == sdl.TOUCH_MOUSEID {
			return Event{}, false
		}
		return Event{
			Type: EventPointerMove,
			X:    float32(e.X), Y: float32(e.Y),
			DX: float32(e.XRel), DY: float32(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		if e.Which == sdl.TOUCH_MOUSEID {
			return Event{}, false
		}
		t := EventPointerDown
		if e.Type == sdl.MOUSEBUTTONUP {
			t = EventPointerUp
		}
		return Event{Type: t, X: float32(e.X), Y: float32(e.Y), Button: e.Button}, true

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		return Event{Type: EventWheel, Wheel: y}, true

	case *sdl.TouchFingerEvent:
		ev := Event{
			X: e.X * i.width, Y: e.Y * i.height,
			DX: e.DX * i.width, DY: e.DY * i.height,
			Button: ButtonLeft,
			Touch:  true,
		}
		switch e.Type {
		case sdl.FINGERDOWN:
			ev.Type = EventPointerDown
		case sdl.FINGERUP:
			ev.Type = EventPointerUp
		case sdl.FINGERMOTION:
			ev.Type = EventPointerMove
		default:
			return Event{}, false
		}
		return ev, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
