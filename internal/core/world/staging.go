package world

import "github.com/monocle-engine/monocle/internal/core/ecs"

// staging is an insertion-ordered set of handles waiting for Sync.
type staging struct {
	order []ecs.EntityID
	spare []ecs.EntityID
	index map[ecs.EntityID]struct{}
}

func newStaging() staging {
	return staging{index: make(map[ecs.EntityID]struct{})}
}

// add reports whether id was not staged yet.
func (s *staging) add(id ecs.EntityID) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *staging) has(id ecs.EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *staging) len() int { return len(s.order) }

// drain empties the set and returns its former contents in insertion order.
// The slice is only valid until the next drain.
func (s *staging) drain() []ecs.EntityID {
	ids := s.order
	s.order, s.spare = s.spare[:0], ids
	clear(s.index)
	return ids
}
