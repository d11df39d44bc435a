package world

import (
	"github.com/monocle-engine/monocle/internal/core/ecs"
	"github.com/monocle-engine/monocle/internal/core/tree"
)

// store owns every entity: the pool hands out handles, the slot map
// resolves them and the master tree orders them by identity.
type store struct {
	pool   *ecs.EntityPool
	slots  *ecs.SlotMap[Entity]
	master *tree.Tree[ecs.EntityID]
}

func newStore(capacity int) *store {
	return &store{
		pool:   ecs.NewEntityPool(capacity),
		slots:  ecs.NewSlotMap[Entity](capacity),
		master: tree.New(ecs.Compare),
	}
}

func (s *store) add(e *Entity) {
	e.id = s.pool.Create()
	s.slots.Set(e.id, e)
	s.master.Insert(e.id)
}

func (s *store) get(id ecs.EntityID) (*Entity, bool) {
	return s.slots.Get(id)
}

// remove frees e and invalidates its handle.
func (s *store) remove(e *Entity) {
	s.master.Delete(s.master.Find(e.id))
	s.slots.Remove(e.id)
	s.pool.Destroy(e.id)
	e.state = stateFreed
}

func (s *store) len() int { return s.slots.Len() }

func (s *store) each(fn func(*Entity)) {
	for n := s.master.Min(); n != nil; n = n.Next() {
		if e, ok := s.slots.Get(n.Value()); ok {
			fn(e)
		}
	}
}
