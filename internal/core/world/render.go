package world

import (
	"cmp"

	"github.com/monocle-engine/monocle/internal/core/ecs"
)

type renderKey struct {
	depth int
	id    ecs.EntityID
}

func compareRenderKey(a, b renderKey) int {
	if c := cmp.Compare(a.depth, b.depth); c != 0 {
		return c
	}
	return ecs.Compare(a.id, b.id)
}

// SetDepth changes e's draw depth. During a render walk the change is
// staged and applied at the next Sync, the last value winning.
func (w *World) SetDepth(e *Entity, depth int) {
	if e == nil || e.state == stateFreed {
		return
	}
	if w.rendering {
		w.pendingDepth[e.id] = depth
		return
	}
	w.applyDepth(e, depth)
}

func (w *World) applyDepth(e *Entity, depth int) {
	if e.depth == depth {
		return
	}
	if e.state == stateIndexed && e.kind.Visible {
		w.render.Delete(w.render.Find(renderKey{depth: e.depth, id: e.id}))
		w.render.Insert(renderKey{depth: depth, id: e.id})
	}
	e.depth = depth
}

// RenderBegin syncs the world and walks visible entities from the highest
// depth to the lowest. Entities of plain kinds are drawn through the Drawer
// as the walk passes them; the first entity of a custom-render kind is
// returned to the caller to draw itself. Returns nil once every visible
// entity has been handled.
func (w *World) RenderBegin() *Entity {
	w.Sync()
	w.rendering = true
	w.renderAt = w.render.Max()
	return w.renderStep()
}

// RenderNext resumes the walk started by RenderBegin.
func (w *World) RenderNext() *Entity {
	if !w.rendering {
		return nil
	}
	return w.renderStep()
}

// Rendering reports whether a render walk is in progress.
func (w *World) Rendering() bool { return w.rendering }

func (w *World) renderStep() *Entity {
	for w.renderAt != nil {
		key := w.renderAt.Value()
		w.renderAt = w.renderAt.Prev()
		if w.pendingDestroy.has(key.id) {
			continue
		}
		e, ok := w.store.get(key.id)
		if !ok {
			continue
		}
		if e.Sprite.NFrames() == 0 {
			continue
		}
		if e.kind.CustomRender {
			return e
		}
		w.drawer.DrawSprite(e.Sprite, e.X-float64(e.Sprite.HotX), e.Y-float64(e.Sprite.HotY), e.frameIndex())
	}
	w.rendering = false
	return nil
}
