package system

import (
	"testing"

	"github.com/monocle-engine/monocle/internal/core/event"
	"github.com/monocle-engine/monocle/internal/core/trait"
	"github.com/monocle-engine/monocle/internal/core/world"
	"github.com/monocle-engine/monocle/internal/data"
	"go.uber.org/zap/zaptest"
)

type kinds map[string]*data.Kind

func (k kinds) Kind(name string) (*data.Kind, bool) {
	v, ok := k[name]
	return v, ok
}

func TestPhaseOf(t *testing.T) {
	tests := []struct {
		typ  event.Type
		want Phase
		ok   bool
	}{
		{event.PreInput, PhaseInput, true},
		{event.MouseMove, PhaseInput, true},
		{event.PrePhysics, PhasePhysics, true},
		{event.Collision, PhaseCollision, true},
		{event.PreRender, PhasePreRender, true},
		{event.Render, PhaseRender, true},
		{event.PostRender, PhasePostRender, true},
		{event.Init, 0, false},
		{event.Quit, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got, ok := PhaseOf(tt.typ)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("PhaseOf = %v,%v want %v,%v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRunFrameDispatchesInPhaseOrder(t *testing.T) {
	reg := trait.NewRegistry()
	w := world.New(reg, kinds{
		"mover": {Name: "mover", DF: 1, Traits: []trait.ID{trait.PrePhysics}},
	}, nil, 4, zaptest.NewLogger(t))
	mover, err := w.Create(0, 0, "mover")
	if err != nil {
		t.Fatal(err)
	}
	var q event.Queue
	q.Push(event.Event{Type: event.KeyDown, Key: 1})
	l := event.NewLoop(w, &q, nil, 0, zaptest.NewLogger(t))

	var log []string
	r := NewRunner()
	// registered out of order; the runner sorts by phase
	r.Register(Func{P: PhasePostRender, F: func(ev *event.Event) { log = append(log, "post") }})
	r.Register(Func{P: PhasePhysics, F: func(ev *event.Event) {
		if ev.Self == mover {
			ev.Self.DX = 3
			log = append(log, "physics")
		}
	}})
	r.Register(Func{P: PhaseInput, F: func(ev *event.Event) {
		if ev.Type == event.KeyDown {
			log = append(log, "key")
		}
	}})

	if !r.RunFrame(l) {
		t.Fatalf("RunFrame reported quit")
	}
	want := []string{"key", "physics", "post"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
	if mover.X != 3 {
		t.Fatalf("velocity set in pre-physics not applied in the same frame: X = %v", mover.X)
	}

	q.Push(event.Event{Type: event.Quit})
	if r.RunFrame(l) {
		t.Fatalf("RunFrame did not report quit")
	}
}
