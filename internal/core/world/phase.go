package world

import "github.com/monocle-engine/monocle/internal/core/trait"

// BeginPhase syncs the world and returns the first member of t's
// subscription set in identity order, or nil when the set is empty.
func (w *World) BeginPhase(t trait.ID) *Entity {
	w.Sync()
	if t == trait.None || int(t) >= len(w.subs) {
		return nil
	}
	w.phaseAt = w.subs[t].Min()
	return w.phaseCurrent()
}

// NextInPhase returns the next member of the set opened by BeginPhase, or
// nil when the walk is over.
func (w *World) NextInPhase() *Entity {
	if w.phaseAt == nil {
		return nil
	}
	w.phaseAt = w.phaseAt.Next()
	return w.phaseCurrent()
}

// phaseCurrent settles the cursor on a member not staged for destruction.
func (w *World) phaseCurrent() *Entity {
	for ; w.phaseAt != nil; w.phaseAt = w.phaseAt.Next() {
		id := w.phaseAt.Value()
		if w.pendingDestroy.has(id) {
			continue
		}
		if e, ok := w.store.get(id); ok {
			return e
		}
	}
	return nil
}
