package event

import (
	"time"

	"github.com/monocle-engine/monocle/internal/core/trait"
	"github.com/monocle-engine/monocle/internal/core/world"
	"go.uber.org/zap"
)

// Loop is the cooperative state machine that sequences a frame:
//
//	PreInput(nil), PreInput(e)..., input events..., PrePhysics(nil),
//	PrePhysics(e)..., [UpdateAll] Collision(c)..., PreRender(nil),
//	PreRender(e)..., [BeginFrame] Render(nil), Render(e)..., PostRender,
//	[EndFrame, pacing] PreInput(nil) ...
//
// Render(e) is only reported for custom-render entities; everything else is
// drawn by the world as the render walk passes it. Quit ends the loop for
// good.
//
// The loop owns the world's iteration cursors. Calling BeginPhase,
// CollisionBegin or RenderBegin on the world between two Pops derails the
// phase in progress.
type Loop struct {
	w        *world.World
	input    InputSource
	frame    FrameSink
	clock    Clock
	interval time.Duration
	log      *zap.Logger

	cur    Event
	target time.Time
	frames uint64
}

// NewLoop returns a loop in the Init state. input and frame may be nil.
// interval is the target frame period; zero disables pacing.
func NewLoop(w *world.World, input InputSource, frame FrameSink, interval time.Duration, log *zap.Logger) *Loop {
	if input == nil {
		input = noInput{}
	}
	if frame == nil {
		frame = noFrame{}
	}
	return &Loop{
		w:        w,
		input:    input,
		frame:    frame,
		clock:    realClock{},
		interval: interval,
		log:      log,
	}
}

// SetClock replaces the pacing clock.
func (l *Loop) SetClock(c Clock) { l.clock = c }

// Frames returns the number of frames completed so far.
func (l *Loop) Frames() uint64 { return l.frames }

// World returns the world the loop drives.
func (l *Loop) World() *world.World { return l.w }

// Quit ends the loop. The next Pop, and every one after it, reports Quit.
func (l *Loop) Quit() {
	l.log.Info("quit requested", zap.Uint64("frames", l.frames))
	l.cur = Event{Type: Quit}
}

// Pop advances the loop by one step and returns the new current event. The
// returned Event is owned by the loop and overwritten by the next Pop.
func (l *Loop) Pop() *Event {
	switch l.cur.Type {
	case Quit:
	case Init:
		l.cur = Event{Type: PreInput}
	case PreInput:
		if l.step(trait.PreInput) {
			break
		}
		l.pumpInput()
	case KeyDown, KeyUp, MouseMove, MouseButtonDown, MouseButtonUp,
		JoyAxisMove, JoyButtonDown, JoyButtonUp, JoyHatMove:
		l.pumpInput()
	case PrePhysics:
		if l.step(trait.PrePhysics) {
			break
		}
		l.w.UpdateAll()
		l.collision(l.w.CollisionBegin())
	case Collision:
		l.collision(l.w.CollisionNext())
	case PreRender:
		if l.step(trait.PreRender) {
			break
		}
		l.frame.BeginFrame()
		l.cur = Event{Type: Render}
	case Render:
		var e *world.Entity
		if l.cur.Self == nil {
			e = l.w.RenderBegin()
		} else {
			e = l.w.RenderNext()
		}
		if e != nil {
			l.cur.Self = e
			break
		}
		l.cur = Event{Type: PostRender}
	case PostRender:
		l.frame.EndFrame()
		l.frames++
		l.pace()
		l.cur = Event{Type: PreInput}
	default:
		l.log.Warn("event loop in unknown state", zap.Stringer("type", l.cur.Type))
		l.cur = Event{Type: PreInput}
	}
	return &l.cur
}

// step walks the subscription set of t, one entity per call.
func (l *Loop) step(t trait.ID) bool {
	if l.cur.Self == nil {
		l.cur.Self = l.w.BeginPhase(t)
	} else {
		l.cur.Self = l.w.NextInPhase()
	}
	return l.cur.Self != nil
}

func (l *Loop) pumpInput() {
	for {
		ev, ok := l.input.Poll()
		if !ok {
			l.cur = Event{Type: PrePhysics}
			return
		}
		if ev.Type == Quit {
			l.Quit()
			return
		}
		if ev.Type.IsInput() {
			ev.Self, ev.Collision = nil, nil
			l.cur = ev
			return
		}
		l.log.Debug("drop non-input event", zap.Stringer("type", ev.Type))
	}
}

func (l *Loop) collision(c *world.Collision) {
	if c == nil {
		l.cur = Event{Type: PreRender}
		return
	}
	l.cur = Event{Type: Collision, Collision: c}
}

// pace sleeps out the rest of the frame period. Waits of a second or more
// mean the clock jumped and are skipped.
func (l *Loop) pace() {
	if l.interval <= 0 {
		return
	}
	if wait := l.target.Sub(l.clock.Now()); wait > 0 && wait < time.Second {
		l.clock.Sleep(wait)
	}
	l.target = l.clock.Now().Add(l.interval)
}
