package world

import (
	"github.com/monocle-engine/monocle/internal/core/ecs"
	"github.com/monocle-engine/monocle/internal/core/trait"
	"github.com/monocle-engine/monocle/internal/core/tree"
)

// Collision is one overlapping pair reported by the collision walk. Self
// declared Trait among its collision targets and Other subscribes to it.
type Collision struct {
	Self      *Entity
	Other     *Entity
	Trait     trait.ID
	TraitName string
}

// Broadphase chooses which members of a target trait a colliding entity is
// tested against. Every candidate still goes through the exact hit box test.
type Broadphase interface {
	Candidates(self *Entity, target trait.ID) Candidates
}

// Candidates enumerates entity handles. Next reports false when exhausted.
type Candidates interface {
	Next() (ecs.EntityID, bool)
}

// SubscriptionBroadphase tests against every member of the target trait's
// subscription set, in identity order.
type SubscriptionBroadphase struct {
	w *World
}

func (b SubscriptionBroadphase) Candidates(_ *Entity, target trait.ID) Candidates {
	if int(target) >= len(b.w.subs) {
		return &subscriptionWalk{}
	}
	return &subscriptionWalk{next: b.w.subs[target].Min()}
}

type subscriptionWalk struct {
	next *tree.Node[ecs.EntityID]
}

func (s *subscriptionWalk) Next() (ecs.EntityID, bool) {
	if s.next == nil {
		return 0, false
	}
	id := s.next.Value()
	s.next = s.next.Next()
	return id, true
}

// collisionCursor walks colliding entities (outer), their targets in
// declaration order, then the candidates of each target (inner).
type collisionCursor struct {
	outer   *tree.Node[ecs.EntityID] // next outer node to load
	self    *Entity
	targets []trait.ID
	target  int
	inner   Candidates

	other    ecs.EntityID
	hasOther bool
}

// CollisionBegin syncs the world and returns the first overlapping pair, or
// nil when there is none.
func (w *World) CollisionBegin() *Collision {
	w.Sync()
	if p, ok := w.bp.(Preparer); ok {
		p.Prepare()
	}
	w.coll = collisionCursor{outer: w.subs[trait.Collision].Min()}
	return w.CollisionNext()
}

// CollisionNext returns the next overlapping pair. Pairs involving an entity
// staged for destruction and pairs of an entity with itself are skipped.
// Once exhausted it keeps returning nil until the next CollisionBegin.
func (w *World) CollisionNext() *Collision {
	c := &w.coll
	for w.seekPair() {
		c.hasOther = false
		self, tid := c.self, c.targets[c.target]
		if w.pendingDestroy.has(self.id) {
			c.inner, c.target = nil, len(c.targets)
			continue
		}
		if c.other == self.id || w.pendingDestroy.has(c.other) {
			continue
		}
		other, ok := w.store.get(c.other)
		if !ok || !overlaps(self, other) {
			continue
		}
		return &Collision{Self: self, Other: other, Trait: tid, TraitName: w.traits.Name(tid)}
	}
	return nil
}

// seekPair moves the cursor onto the next untested pair, stepping the inner
// enumeration first, then the target trait, then the outer entity.
func (w *World) seekPair() bool {
	c := &w.coll
	for !c.hasOther {
		switch {
		case c.self == nil || (c.inner == nil && c.target >= len(c.targets)):
			if !w.nextSelf() {
				return false
			}
		case c.inner == nil:
			c.inner = w.bp.Candidates(c.self, c.targets[c.target])
		default:
			if id, ok := c.inner.Next(); ok {
				c.other, c.hasOther = id, true
			} else {
				c.inner = nil
				c.target++
			}
		}
	}
	return true
}

func (w *World) nextSelf() bool {
	c := &w.coll
	for c.outer != nil {
		id := c.outer.Value()
		c.outer = c.outer.Next()
		if w.pendingDestroy.has(id) {
			continue
		}
		e, ok := w.store.get(id)
		if !ok {
			continue
		}
		c.self, c.targets, c.target, c.inner = e, e.kind.Collisions, 0, nil
		return true
	}
	c.self = nil
	return false
}

func overlaps(a, b *Entity) bool {
	ra, ok := a.hitRect()
	if !ok {
		return false
	}
	rb, ok := b.hitRect()
	if !ok {
		return false
	}
	return ra.Overlaps(rb)
}
