// Package trait maps trait names to small integer ids. Traits are discovered
// while resource maps load, so the mapping is built at runtime and only
// ever grows.
package trait

import "golang.org/x/text/unicode/norm"

// ID identifies a trait. Zero is never assigned and terminates trait lists.
type ID uint32

// Built-in traits, registered by NewRegistry in this order.
const (
	None ID = iota
	Invisible
	PreInput
	PrePhysics
	PreRender
	Render
	Collision
)

var builtins = []string{
	Invisible:  "invisible",
	PreInput:   "pre-input",
	PrePhysics: "pre-physics",
	PreRender:  "pre-render",
	Render:     "render",
	Collision:  "collision",
}

// Registry is an append-only name⇄id table. It is not safe for concurrent
// use; it lives on the game loop goroutine with the world that owns it.
type Registry struct {
	ids   map[string]ID
	names []string // names[id]; names[0] is the empty sentinel
}

// NewRegistry returns a registry holding the built-in traits.
func NewRegistry() *Registry {
	r := &Registry{
		ids:   make(map[string]ID, 64),
		names: make([]string, 1, 64),
	}
	for _, name := range builtins[1:] {
		r.ID(name)
	}
	return r
}

// ID returns the id bound to name, assigning the next free id on first use.
func (r *Registry) ID(name string) ID {
	name = norm.NFC.String(name)
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := ID(len(r.names))
	r.names = append(r.names, name)
	r.ids[name] = id
	return id
}

// Lookup returns the id for name without registering it.
func (r *Registry) Lookup(name string) (ID, bool) {
	id, ok := r.ids[norm.NFC.String(name)]
	return id, ok
}

// Name returns the name bound to id, or "" for None and unassigned ids.
func (r *Registry) Name(id ID) string {
	if int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}

// Len returns the highest assigned id. Tables indexed by ID need Len()+1
// slots.
func (r *Registry) Len() int {
	return len(r.names) - 1
}
