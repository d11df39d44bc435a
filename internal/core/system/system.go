package system

import "github.com/monocle-engine/monocle/internal/core/event"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: pre-input entities and input events
	PhasePhysics                 // 1: pre-physics entities
	PhaseCollision               // 2: overlapping pairs after the physics step
	PhasePreRender               // 3: pre-render entities
	PhaseRender                  // 4: custom-render entities
	PhasePostRender              // 5: overlays, frame bookkeeping
)

// System is the interface every frame system implements. Update is called
// for every event of the system's phase, including the nil-Self event that
// opens the phase.
type System interface {
	Phase() Phase
	Update(ev *event.Event)
}

// Func adapts a plain function to System.
type Func struct {
	P Phase
	F func(ev *event.Event)
}

func (f Func) Phase() Phase           { return f.P }
func (f Func) Update(ev *event.Event) { f.F(ev) }

// PhaseOf returns the phase an event is dispatched to. Init and Quit belong
// to no phase.
func PhaseOf(t event.Type) (Phase, bool) {
	switch {
	case t == event.PreInput || t.IsInput():
		return PhaseInput, true
	case t == event.PrePhysics:
		return PhasePhysics, true
	case t == event.Collision:
		return PhaseCollision, true
	case t == event.PreRender:
		return PhasePreRender, true
	case t == event.Render:
		return PhaseRender, true
	case t == event.PostRender:
		return PhasePostRender, true
	}
	return 0, false
}
