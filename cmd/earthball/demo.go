package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/monocle-engine/monocle/internal/config"
	"github.com/monocle-engine/monocle/internal/core/event"
	"github.com/monocle-engine/monocle/internal/core/system"
	"github.com/monocle-engine/monocle/internal/core/world"
	"github.com/monocle-engine/monocle/internal/engine"
	"github.com/monocle-engine/monocle/internal/render/ebitenrender"
	"go.uber.org/zap"
)

const (
	ballKind  = "earth"
	ballSize  = 64
	fadeTicks = 100 // frames between ESC and exit
)

var backgrounds = [][3]uint8{{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {0, 0, 128}}

type demo struct {
	eng    *engine.Engine
	loop   *event.Loop
	canvas *ebitenrender.Canvas
	video  config.VideoConfig
	log    *zap.Logger

	countdown int
	bg        int
}

func newDemo(eng *engine.Engine, loop *event.Loop, canvas *ebitenrender.Canvas, video config.VideoConfig, log *zap.Logger) *demo {
	return &demo{eng: eng, loop: loop, canvas: canvas, video: video, log: log}
}

func (d *demo) spawn(n int) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sign := func() float64 {
		if rng.Intn(2) == 0 {
			return -1
		}
		return 1
	}
	for i := 0; i < n; i++ {
		x := float64(rng.Intn(max(d.video.Width-ballSize, 1)))
		y := float64(rng.Intn(max(d.video.Height-ballSize, 1)))
		e, err := d.eng.World.Create(x, y, ballKind)
		if err != nil {
			return fmt.Errorf("spawn: %w", err)
		}
		e.DX = float64(rng.Intn(5)+1) * sign()
		e.DY = float64(rng.Intn(5)+1) * sign()
		e.F = float64(rng.Intn(30))
	}
	return nil
}

func (d *demo) register(r *system.Runner) {
	r.Register(system.Func{P: system.PhaseInput, F: d.onInput})
	r.Register(system.Func{P: system.PhasePreRender, F: d.onPreRender})
	r.Register(system.Func{P: system.PhaseRender, F: d.onRender})
}

func (d *demo) instructions() []string {
	v, ok := d.eng.Resources.Data("instructions")
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	lines := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			s = "(invalid datum)"
		}
		lines = append(lines, s)
	}
	return lines
}

func (d *demo) printInstructions() {
	lines := d.instructions()
	if len(lines) == 0 {
		fmt.Println("No instructions available")
		return
	}
	fmt.Println("Instructions:")
	for _, l := range lines {
		fmt.Printf("    %s\n", l)
	}
}

func (d *demo) onInput(ev *event.Event) {
	if ev.Type != event.KeyDown {
		return
	}
	switch ebiten.Key(ev.Key) {
	case ebiten.KeyEscape:
		if d.countdown == 0 {
			d.countdown = fadeTicks
		}
	case ebiten.KeyB:
		d.bg = (d.bg + 1) % len(backgrounds)
		c := backgrounds[d.bg]
		d.canvas.SetClearColor(c[0], c[1], c[2])
	case ebiten.KeyT:
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
		d.log.Info("fullscreen toggled", zap.Bool("fullscreen", ebiten.IsFullscreen()))
	}
}

func (d *demo) onPreRender(ev *event.Event) {
	if ev.Self != nil {
		d.bounce(ev.Self)
		return
	}
	if d.countdown > 0 {
		d.countdown--
		if d.countdown == 0 {
			d.loop.Quit()
		}
	}
}

// bounce keeps a ball inside the window, reflecting its velocity off the
// edges.
func (d *demo) bounce(e *world.Entity) {
	maxX := float64(d.video.Width - ballSize)
	maxY := float64(d.video.Height - ballSize)
	nx, ny := e.X+e.DX, e.Y+e.DY
	if nx < 0 {
		e.X, e.DX = 0, -e.DX
	}
	if ny < 0 {
		e.Y, e.DY = 0, -e.DY
	}
	if nx > maxX {
		e.X, e.DX = maxX, -e.DX
	}
	if ny > maxY {
		e.Y, e.DY = maxY, -e.DY
	}
}

func (d *demo) onRender(ev *event.Event) {
	if ev.Self != nil {
		return
	}
	lines := d.instructions()
	if len(lines) == 0 {
		return
	}
	x, y := float64(d.video.Width)/2-250, float64(d.video.Height)/2-88
	d.canvas.DrawRect(x, y, 503, 176, 128, 128, 128)
	for i, l := range lines {
		d.canvas.DrawText(x+4, y+4+float64(i*21), l)
	}
}
