package world

import (
	"github.com/monocle-engine/monocle/internal/core/ecs"
	"github.com/monocle-engine/monocle/internal/data"
)

type entityState uint8

const (
	stateStaged  entityState = iota // created, waiting for Sync
	stateIndexed                    // member of its subscription and render indices
	stateFreed
)

// Entity is one live game object. Position, motion, animation, sprite and
// UserData belong to the application; depth changes go through
// World.SetDepth so the render index stays ordered.
type Entity struct {
	X, Y   float64
	DX, DY float64
	F, DF  float64
	Sprite *data.Sprite

	// UserData is never inspected by the engine.
	UserData any

	id    ecs.EntityID
	kind  *data.Kind
	depth int
	state entityState
}

func (e *Entity) ID() ecs.EntityID { return e.id }
func (e *Entity) Kind() *data.Kind { return e.kind }
func (e *Entity) Depth() int       { return e.depth }

// Alive reports whether the entity has not been freed yet. An entity staged
// for destruction is still alive until the next Sync.
func (e *Entity) Alive() bool { return e.state != stateFreed }

// hitRect returns the entity's hit box in world coordinates.
func (e *Entity) hitRect() (data.Rect, bool) {
	if e.Sprite == nil {
		return data.Rect{}, false
	}
	return e.Sprite.HitRect(e.X, e.Y), true
}

func (e *Entity) frameIndex() int {
	n := e.Sprite.NFrames()
	i := int(e.F)
	if i < 0 || i >= n {
		i = (i%n + n) % n
	}
	return i
}
