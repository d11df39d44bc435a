package main

import (
	"testing"

	"github.com/monocle-engine/monocle/internal/config"
	"github.com/monocle-engine/monocle/internal/engine"
	"go.uber.org/zap/zaptest"
)

func newEngine(t *testing.T, broadphase string) *engine.Engine {
	t.Helper()
	cfg := config.Defaults().Engine
	cfg.Broadphase = broadphase
	eng := engine.New(cfg, zaptest.NewLogger(t))
	eng.AddFS("embedded", resources)
	if err := eng.Load("collide.json"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return eng
}

func TestCollisionWindow(t *testing.T) {
	for _, bp := range []string{"subscription", "grid"} {
		t.Run(bp, func(t *testing.T) {
			res, err := simulate(newEngine(t, bp), 200)
			if err != nil {
				t.Fatalf("simulate: %v", err)
			}
			if res.Start != 50 || res.End != 113 {
				t.Fatalf("collision from %d to %d, want 50 to 113", res.Start, res.End)
			}
			if len(res.Inconsistent) != 0 {
				t.Fatalf("one-sided collisions at frames %v", res.Inconsistent)
			}
			if res.Frames != 114 {
				t.Fatalf("ran %d frames, want 114", res.Frames)
			}
		})
	}
}

func TestCollisionGivesUp(t *testing.T) {
	res, err := simulate(newEngine(t, "subscription"), 20)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.Start != -1 || res.End != -1 {
		t.Fatalf("collision observed within 20 frames: %+v", res)
	}
	if res.Frames != 21 {
		t.Fatalf("ran %d frames, want 21", res.Frames)
	}
}
