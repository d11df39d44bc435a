package main

import (
	"fmt"

	"github.com/monocle-engine/monocle/internal/core/event"
	"github.com/monocle-engine/monocle/internal/core/system"
	"github.com/monocle-engine/monocle/internal/core/world"
	"github.com/monocle-engine/monocle/internal/engine"
)

const (
	arenaW = 768
	arenaH = 480
	ball   = 64
)

// result of a collision run. Start and End are -1 when not observed.
type result struct {
	Start, End   int
	Frames       int
	Inconsistent []int
}

// collisionTest tracks which ball reported a hit in the current frame.
type collisionTest struct {
	loop        *event.Loop
	left, right *world.Entity
	maxFrames   int

	frame             int
	leftHit, rightHit bool
	oldHit            bool
	res               result
}

func simulate(eng *engine.Engine, maxFrames int) (result, error) {
	left, err := eng.World.Create(100, 208, "crashy-earth")
	if err != nil {
		return result{}, fmt.Errorf("create left: %w", err)
	}
	right, err := eng.World.Create(264, 208, "crashy-earth")
	if err != nil {
		return result{}, fmt.Errorf("create right: %w", err)
	}
	left.DX, left.DY = 1, 0
	right.DX, right.DY = -1, 0

	loop := eng.NewLoop(nil, nil, false)
	ct := &collisionTest{
		loop:      loop,
		left:      left,
		right:     right,
		maxFrames: maxFrames,
		res:       result{Start: -1, End: -1},
	}
	eng.Runner.Register(system.Func{P: system.PhasePreRender, F: ct.preRender})
	eng.Runner.Register(system.Func{P: system.PhaseCollision, F: ct.collision})
	eng.Run(loop, 0)
	ct.res.Frames = ct.frame
	return ct.res, nil
}

func (ct *collisionTest) collision(ev *event.Event) {
	switch ev.Collision.Self {
	case ct.left:
		ct.leftHit = true
	case ct.right:
		ct.rightHit = true
	}
}

func (ct *collisionTest) preRender(ev *event.Event) {
	if ev.Self != nil {
		bounce(ev.Self)
		return
	}
	if ct.leftHit != ct.rightHit {
		ct.res.Inconsistent = append(ct.res.Inconsistent, ct.frame)
	}
	if ct.leftHit && !ct.oldHit {
		ct.res.Start = ct.frame
	}
	done := false
	if !ct.leftHit && ct.oldHit {
		ct.res.End = ct.frame
		done = true
	}
	ct.oldHit = ct.leftHit
	ct.leftHit, ct.rightHit = false, false
	ct.frame++
	if done || ct.frame > ct.maxFrames {
		ct.loop.Quit()
	}
}

func bounce(e *world.Entity) {
	nx, ny := e.X+e.DX, e.Y+e.DY
	if nx < 0 {
		e.X, e.DX = 0, -e.DX
	}
	if ny < 0 {
		e.Y, e.DY = 0, -e.DY
	}
	if nx > arenaW-ball {
		e.X, e.DX = arenaW-ball, -e.DX
	}
	if ny > arenaH-ball {
		e.Y, e.DY = arenaH-ball, -e.DY
	}
}
