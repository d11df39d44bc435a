package world

import (
	"math"
	"slices"

	"github.com/monocle-engine/monocle/internal/core/ecs"
	"github.com/monocle-engine/monocle/internal/core/trait"
	"github.com/monocle-engine/monocle/internal/data"
)

// Preparer is implemented by broadphases that index the world once per
// collision walk. Prepare runs right after the walk's Sync.
type Preparer interface {
	Prepare()
}

type cellKey struct {
	trait  trait.ID
	cx, cy int32
}

// GridBroadphase buckets the hit boxes of every collision target into square
// cells. A colliding entity is only tested against the members of the cells
// its own hit box covers. Candidates come out in identity order, so the walk
// reports the same pairs in the same order as SubscriptionBroadphase.
// The grid is rebuilt at the start of every collision walk.
type GridBroadphase struct {
	w        *World
	cellSize float64
	cells    map[cellKey][]ecs.EntityID

	targets map[trait.ID]struct{}
	seen    map[ecs.EntityID]struct{}
}

var _ Preparer = (*GridBroadphase)(nil)

// NewGridBroadphase returns a grid over w. cellSize should be about the
// size of a typical hit box.
func NewGridBroadphase(w *World, cellSize float64) *GridBroadphase {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &GridBroadphase{
		w:        w,
		cellSize: cellSize,
		cells:    make(map[cellKey][]ecs.EntityID),
		targets:  make(map[trait.ID]struct{}),
		seen:     make(map[ecs.EntityID]struct{}),
	}
}

func (g *GridBroadphase) toCell(v float64) int32 {
	return int32(math.Floor(v / g.cellSize))
}

// span returns the cell range a rectangle covers.
func (g *GridBroadphase) span(r data.Rect) (x0, y0, x1, y1 int32) {
	return g.toCell(r.X), g.toCell(r.Y), g.toCell(r.X+r.W), g.toCell(r.Y+r.H)
}

func (g *GridBroadphase) Prepare() {
	clear(g.cells)
	clear(g.targets)
	w := g.w
	for n := w.subs[trait.Collision].Min(); n != nil; n = n.Next() {
		if e, ok := w.store.get(n.Value()); ok {
			for _, t := range e.kind.Collisions {
				g.targets[t] = struct{}{}
			}
		}
	}
	for t := range g.targets {
		if int(t) >= len(w.subs) {
			continue
		}
		for n := w.subs[t].Min(); n != nil; n = n.Next() {
			e, ok := w.store.get(n.Value())
			if !ok {
				continue
			}
			r, ok := e.hitRect()
			if !ok {
				continue
			}
			x0, y0, x1, y1 := g.span(r)
			for cx := x0; cx <= x1; cx++ {
				for cy := y0; cy <= y1; cy++ {
					k := cellKey{trait: t, cx: cx, cy: cy}
					g.cells[k] = append(g.cells[k], e.id)
				}
			}
		}
	}
}

func (g *GridBroadphase) Candidates(self *Entity, target trait.ID) Candidates {
	r, ok := self.hitRect()
	if !ok {
		return &sliceWalk{}
	}
	clear(g.seen)
	var ids []ecs.EntityID
	x0, y0, x1, y1 := g.span(r)
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			for _, id := range g.cells[cellKey{trait: target, cx: cx, cy: cy}] {
				if _, dup := g.seen[id]; dup {
					continue
				}
				g.seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	slices.SortFunc(ids, ecs.Compare)
	return &sliceWalk{ids: ids}
}

type sliceWalk struct {
	ids []ecs.EntityID
}

func (s *sliceWalk) Next() (ecs.EntityID, bool) {
	if len(s.ids) == 0 {
		return 0, false
	}
	id := s.ids[0]
	s.ids = s.ids[1:]
	return id, true
}
