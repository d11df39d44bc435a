// Package event drives a world through the engine's global event loop, one
// step per Pop.
package event

import (
	"fmt"

	"github.com/monocle-engine/monocle/internal/core/world"
)

// Type identifies what an Event reports.
type Type int

const (
	Init Type = iota
	Quit
	PreInput
	KeyDown
	KeyUp
	MouseMove
	MouseButtonDown
	MouseButtonUp
	JoyAxisMove
	JoyButtonDown
	JoyButtonUp
	JoyHatMove
	PrePhysics
	Collision
	PreRender
	Render
	PostRender
)

var typeNames = [...]string{
	Init:            "init",
	Quit:            "quit",
	PreInput:        "pre-input",
	KeyDown:         "key-down",
	KeyUp:           "key-up",
	MouseMove:       "mouse-move",
	MouseButtonDown: "mouse-button-down",
	MouseButtonUp:   "mouse-button-up",
	JoyAxisMove:     "joy-axis-move",
	JoyButtonDown:   "joy-button-down",
	JoyButtonUp:     "joy-button-up",
	JoyHatMove:      "joy-hat-move",
	PrePhysics:      "pre-physics",
	Collision:       "collision",
	PreRender:       "pre-render",
	Render:          "render",
	PostRender:      "post-render",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("event.Type(%d)", int(t))
}

// IsInput reports whether t comes from an InputSource.
func (t Type) IsInput() bool {
	return t >= KeyDown && t <= JoyHatMove
}

// Joystick carries joystick axis, button and hat events.
type Joystick struct {
	Stick int // device
	Index int // axis, button or hat
	Value int
}

// Event is one step of the loop. Self is the entity whose turn it is in
// the pre-input, pre-physics, pre-render and render phases; it is nil on
// the first event of each of those phases. Collision is set on collision
// events.
type Event struct {
	Type      Type
	Self      *world.Entity
	Collision *world.Collision

	Key         int
	MouseX      int
	MouseY      int
	MouseButton int
	Joy         Joystick
}
