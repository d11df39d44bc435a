package system

import (
	"sort"

	"github.com/monocle-engine/monocle/internal/core/event"
)

// Runner dispatches loop events to systems in phase order.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Dispatch hands ev to every system of its phase, in registration order.
func (r *Runner) Dispatch(ev *event.Event) {
	p, ok := PhaseOf(ev.Type)
	if !ok {
		return
	}
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == p {
			s.Update(ev)
		}
	}
}

// RunFrame pops and dispatches events until the frame's post-render event
// has been handled. It returns false once the loop has quit.
func (r *Runner) RunFrame(l *event.Loop) bool {
	for {
		ev := l.Pop()
		if ev.Type == event.Quit {
			return false
		}
		r.Dispatch(ev)
		if ev.Type == event.PostRender {
			return true
		}
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
