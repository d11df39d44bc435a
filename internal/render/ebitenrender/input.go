package ebitenrender

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/monocle-engine/monocle/internal/core/event"
)

var _ event.InputSource = (*Input)(nil)

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
}

// axisScale maps ebiten's [-1, 1] axis range onto 16-bit joystick values.
const axisScale = 32767

// Input turns ebiten's per-tick input state into loop events. Update must
// run once per ebiten tick before the loop pumps input.
type Input struct {
	queue event.Queue

	mouseX, mouseY int
	axes           map[ebiten.GamepadID][]int

	keys     []ebiten.Key
	buttons  []ebiten.GamepadButton
	gamepads []ebiten.GamepadID
}

func NewInput() *Input {
	return &Input{axes: make(map[ebiten.GamepadID][]int)}
}

func (in *Input) Poll() (event.Event, bool) { return in.queue.Poll() }

// Update collects the input that happened since the previous tick.
func (in *Input) Update() {
	if ebiten.IsWindowBeingClosed() {
		in.queue.Push(event.Event{Type: event.Quit})
		return
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		in.queue.Push(event.Event{Type: event.KeyDown, Key: int(k)})
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		in.queue.Push(event.Event{Type: event.KeyUp, Key: int(k)})
	}

	x, y := ebiten.CursorPosition()
	in.mouseMoved(x, y)
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			in.queue.Push(event.Event{Type: event.MouseButtonDown, MouseButton: int(b)})
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			in.queue.Push(event.Event{Type: event.MouseButtonUp, MouseButton: int(b)})
		}
	}

	in.gamepads = ebiten.AppendGamepadIDs(in.gamepads[:0])
	for _, id := range in.gamepads {
		in.updateGamepad(id)
	}
}

func (in *Input) mouseMoved(x, y int) {
	if x == in.mouseX && y == in.mouseY {
		return
	}
	in.mouseX, in.mouseY = x, y
	in.queue.Push(event.Event{Type: event.MouseMove, MouseX: x, MouseY: y})
}

func (in *Input) updateGamepad(id ebiten.GamepadID) {
	stick := int(id)
	in.buttons = inpututil.AppendJustPressedGamepadButtons(id, in.buttons[:0])
	for _, b := range in.buttons {
		in.queue.Push(event.Event{Type: event.JoyButtonDown, Joy: event.Joystick{Stick: stick, Index: int(b)}})
	}
	in.buttons = inpututil.AppendJustReleasedGamepadButtons(id, in.buttons[:0])
	for _, b := range in.buttons {
		in.queue.Push(event.Event{Type: event.JoyButtonUp, Joy: event.Joystick{Stick: stick, Index: int(b)}})
	}

	n := ebiten.GamepadAxisCount(id)
	prev := in.axes[id]
	for len(prev) < n {
		prev = append(prev, 0)
	}
	for a := 0; a < n; a++ {
		v := axisValue(ebiten.GamepadAxisValue(id, ebiten.GamepadAxisType(a)))
		if v != prev[a] {
			prev[a] = v
			in.queue.Push(event.Event{Type: event.JoyAxisMove, Joy: event.Joystick{Stick: stick, Index: a, Value: v}})
		}
	}
	in.axes[id] = prev
}

func axisValue(f float64) int {
	return int(math.Round(math.Max(-1, math.Min(1, f)) * axisScale))
}
