package world

import (
	"fmt"
	"math"

	"github.com/monocle-engine/monocle/internal/core/trait"
	"go.uber.org/zap"
)

// Create makes a new entity of the named kind at (x, y), copying the kind's
// motion, animation, depth and sprite defaults. The entity exists right away
// but joins no subscription or render index until the next Sync.
func (w *World) Create(x, y float64, kind string) (*Entity, error) {
	k, ok := w.kinds.Kind(kind)
	if !ok {
		w.log.Warn("create: unknown kind", zap.String("kind", kind))
		return nil, fmt.Errorf("create %q: %w", kind, ErrUnknownKind)
	}
	e := &Entity{
		X:      x,
		Y:      y,
		DX:     k.DX,
		DY:     k.DY,
		F:      k.F,
		DF:     k.DF,
		Sprite: k.Sprite,
		kind:   k,
		depth:  k.Depth,
	}
	w.store.add(e)
	w.pendingCreate.add(e.id)
	return e, nil
}

// Destroy stages e for removal at the next Sync. From now on no iteration
// hands e out. Destroying an entity twice, or one already freed, does
// nothing.
func (w *World) Destroy(e *Entity) {
	if e == nil || e.state == stateFreed {
		return
	}
	if cur, ok := w.store.get(e.id); !ok || cur != e {
		return
	}
	w.pendingDestroy.add(e.id)
}

// Sync applies every staged request: trait table growth, then creations,
// then destructions, then depth changes made during a render walk. It also
// ends any iteration in progress; the Begin calls run it first.
func (w *World) Sync() {
	w.growSubscriptions()
	w.phaseAt = nil
	w.coll = collisionCursor{}
	w.renderAt, w.rendering = nil, false

	created, destroyed := w.pendingCreate.len(), w.pendingDestroy.len()
	for _, id := range w.pendingCreate.drain() {
		if e, ok := w.store.get(id); ok && e.state == stateStaged {
			w.index(e)
		}
	}
	for _, id := range w.pendingDestroy.drain() {
		e, ok := w.store.get(id)
		if !ok {
			continue
		}
		if e.state == stateIndexed {
			w.unindex(e)
		}
		w.store.remove(e)
	}
	for id, depth := range w.pendingDepth {
		if e, ok := w.store.get(id); ok {
			w.applyDepth(e, depth)
		}
	}
	clear(w.pendingDepth)

	if created+destroyed > 0 {
		w.log.Debug("world sync",
			zap.Int("created", created),
			zap.Int("destroyed", destroyed),
			zap.Int("live", w.store.len()),
		)
	}
}

// index adds e to the subscription set of every trait it declares, to the
// collision set when it has collision targets and to the render index when
// it is visible.
func (w *World) index(e *Entity) {
	k := e.kind
	for _, t := range k.Traits {
		w.subs[t].Insert(e.id)
	}
	if k.Collides() && !k.HasTrait(trait.Collision) {
		w.subs[trait.Collision].Insert(e.id)
	}
	if k.Visible {
		w.render.Insert(renderKey{depth: e.depth, id: e.id})
	}
	e.state = stateIndexed
}

func (w *World) unindex(e *Entity) {
	k := e.kind
	for _, t := range k.Traits {
		w.subs[t].Delete(w.subs[t].Find(e.id))
	}
	if k.Collides() && !k.HasTrait(trait.Collision) {
		w.subs[trait.Collision].Delete(w.subs[trait.Collision].Find(e.id))
	}
	if k.Visible {
		w.render.Delete(w.render.Find(renderKey{depth: e.depth, id: e.id}))
	}
}

// UpdateAll advances every entity in the store by one physics step: position
// by velocity and frame by frame speed, wrapping the frame into the range of
// the entity's sprite.
func (w *World) UpdateAll() {
	w.store.each(func(e *Entity) {
		e.X += e.DX
		e.Y += e.DY
		e.F += e.DF
		if n := float64(e.Sprite.NFrames()); n > 0 {
			e.F = math.Mod(e.F, n)
			if e.F < 0 {
				e.F += n
			}
		}
	})
}
