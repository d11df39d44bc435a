package data

import "github.com/monocle-engine/monocle/internal/core/trait"

// Kind is the immutable template entities are created from. It is built
// once while a resource map loads and shared by every entity of the kind.
type Kind struct {
	Name   string
	DX, DY float64
	F, DF  float64
	Depth  int
	Sprite *Sprite

	// Traits lists the traits the kind subscribes to. The invisible and
	// render traits never appear here; they are folded into Visible and
	// CustomRender.
	Traits []trait.ID

	// Collisions lists the traits the kind collision-tests against.
	Collisions []trait.ID

	Visible      bool
	CustomRender bool
}

// HasTrait reports whether the kind subscribes to id.
func (k *Kind) HasTrait(id trait.ID) bool {
	for _, t := range k.Traits {
		if t == id {
			return true
		}
	}
	return false
}

// Collides reports whether the kind declares any collision targets.
func (k *Kind) Collides() bool {
	return len(k.Collisions) > 0
}
