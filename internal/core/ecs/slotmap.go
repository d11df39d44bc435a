package ecs

// SlotMap is an arena of *T indexed by EntityID. Lookups check the
// generation stored with the slot, so a handle whose slot has been recycled
// resolves to nothing instead of to the new occupant.
type SlotMap[T any] struct {
	slots []slot[T]
	count int
}

type slot[T any] struct {
	id  EntityID
	ptr *T
}

func NewSlotMap[T any](capacity int) *SlotMap[T] {
	return &SlotMap[T]{
		slots: make([]slot[T], 0, capacity+1),
	}
}

func (s *SlotMap[T]) Set(id EntityID, c *T) {
	idx := int(id.Index())
	if idx >= len(s.slots) {
		s.slots = append(s.slots, make([]slot[T], idx+1-len(s.slots))...)
	}
	if s.slots[idx].ptr == nil {
		s.count++
	}
	s.slots[idx] = slot[T]{id: id, ptr: c}
}

func (s *SlotMap[T]) Get(id EntityID) (*T, bool) {
	idx := int(id.Index())
	if idx >= len(s.slots) {
		return nil, false
	}
	sl := s.slots[idx]
	if sl.ptr == nil || sl.id != id {
		return nil, false
	}
	return sl.ptr, true
}

func (s *SlotMap[T]) Remove(id EntityID) {
	idx := int(id.Index())
	if idx >= len(s.slots) || s.slots[idx].ptr == nil || s.slots[idx].id != id {
		return
	}
	s.slots[idx] = slot[T]{}
	s.count--
}

func (s *SlotMap[T]) Has(id EntityID) bool {
	_, ok := s.Get(id)
	return ok
}

func (s *SlotMap[T]) Len() int {
	return s.count
}

// Each visits occupied slots in index order.
func (s *SlotMap[T]) Each(fn func(EntityID, *T)) {
	for _, sl := range s.slots {
		if sl.ptr != nil {
			fn(sl.id, sl.ptr)
		}
	}
}
