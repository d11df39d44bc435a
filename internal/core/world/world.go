// Package world is the live-object runtime: it owns every entity, keeps one
// ordered Subscription Set per trait, a depth-ordered render index and the
// collision cursor.
//
// Lifecycle requests (Create, Destroy, SetDepth during a render walk) are
// staged and applied at Sync, which every Begin call runs first. Iteration
// therefore never sees an index change under its cursor, and an entity
// staged for destruction is never handed out again.
//
// A World is not safe for concurrent use. It belongs to the goroutine that
// drives the event loop.
package world

import (
	"github.com/monocle-engine/monocle/internal/core/ecs"
	"github.com/monocle-engine/monocle/internal/core/trait"
	"github.com/monocle-engine/monocle/internal/core/tree"
	"github.com/monocle-engine/monocle/internal/data"
	"go.uber.org/zap"
)

// KindResolver looks up immutable Kind templates by name.
type KindResolver interface {
	Kind(name string) (*data.Kind, bool)
}

// Drawer receives the default sprite blits of a render walk. (x, y) is the
// top-left corner of the frame, the entity position minus the hotspot.
type Drawer interface {
	DrawSprite(s *data.Sprite, x, y float64, frame int)
}

type nopDrawer struct{}

func (nopDrawer) DrawSprite(*data.Sprite, float64, float64, int) {}

// World is the explicit context that replaces the engine's global object,
// trait and subscription tables.
type World struct {
	log    *zap.Logger
	traits *trait.Registry
	kinds  KindResolver
	drawer Drawer
	bp     Broadphase

	store  *store
	subs   []*tree.Tree[ecs.EntityID] // indexed by trait.ID
	render *tree.Tree[renderKey]

	pendingCreate  staging
	pendingDestroy staging
	pendingDepth   map[ecs.EntityID]int

	phaseAt   *tree.Node[ecs.EntityID]
	coll      collisionCursor
	renderAt  *tree.Node[renderKey]
	rendering bool
}

// New returns an empty world. drawer may be nil when nothing is drawn.
// capacity sizes the entity arena; it grows as needed.
func New(traits *trait.Registry, kinds KindResolver, drawer Drawer, capacity int, log *zap.Logger) *World {
	if drawer == nil {
		drawer = nopDrawer{}
	}
	if capacity < 0 {
		capacity = 0
	}
	w := &World{
		log:            log,
		traits:         traits,
		kinds:          kinds,
		drawer:         drawer,
		store:          newStore(capacity),
		render:         tree.New(compareRenderKey),
		pendingCreate:  newStaging(),
		pendingDestroy: newStaging(),
		pendingDepth:   make(map[ecs.EntityID]int),
	}
	w.bp = SubscriptionBroadphase{w: w}
	w.growSubscriptions()
	return w
}

// Traits returns the registry trait ids are drawn from.
func (w *World) Traits() *trait.Registry { return w.traits }

// TraitID is shorthand for Traits().ID(name).
func (w *World) TraitID(name string) trait.ID { return w.traits.ID(name) }

// SetDrawer replaces the target of default sprite blits.
func (w *World) SetDrawer(d Drawer) {
	if d == nil {
		d = nopDrawer{}
	}
	w.drawer = d
}

// SetBroadphase replaces the collision candidate source. nil restores the
// brute-force subscription walk.
func (w *World) SetBroadphase(bp Broadphase) {
	if bp == nil {
		bp = SubscriptionBroadphase{w: w}
	}
	w.bp = bp
}

// Entity resolves a handle. Handles of freed entities resolve to nothing.
func (w *World) Entity(id ecs.EntityID) (*Entity, bool) {
	return w.store.get(id)
}

// Len returns the number of entities in the store, including ones created
// or destroyed since the last Sync.
func (w *World) Len() int {
	return w.store.len()
}

// Each visits every entity in the store in identity order.
func (w *World) Each(fn func(*Entity)) {
	w.store.each(fn)
}

// Doomed reports whether e is staged for destruction.
func (w *World) Doomed(e *Entity) bool {
	return e != nil && w.pendingDestroy.has(e.id)
}

// Subscribers returns the number of indexed entities that declare t.
func (w *World) Subscribers(t trait.ID) int {
	if int(t) >= len(w.subs) {
		return 0
	}
	return w.subs[t].Len()
}

// growSubscriptions makes room for every trait id registered so far.
func (w *World) growSubscriptions() {
	for len(w.subs) <= w.traits.Len() {
		w.subs = append(w.subs, tree.New(ecs.Compare))
	}
}
