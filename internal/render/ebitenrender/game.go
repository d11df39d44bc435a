package ebitenrender

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/monocle-engine/monocle/internal/config"
	"github.com/monocle-engine/monocle/internal/core/event"
	"github.com/monocle-engine/monocle/internal/core/system"
)

// Game runs one loop frame per ebiten tick.
type Game struct {
	Runner *system.Runner
	Loop   *event.Loop
	Canvas *Canvas
	Input  *Input

	width, height int
}

var _ ebiten.Game = (*Game)(nil)

func NewGame(runner *system.Runner, loop *event.Loop, canvas *Canvas, input *Input, width, height int) *Game {
	return &Game{Runner: runner, Loop: loop, Canvas: canvas, Input: input, width: width, height: height}
}

func (g *Game) Update() error {
	g.Input.Update()
	if !g.Runner.RunFrame(g.Loop) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Canvas.Draw(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens the window described by video and blocks until the loop quits.
// ebiten paces ticks itself, so the loop should be built with a zero
// interval and frameInterval is turned into ebiten's tick rate.
func Run(g *Game, video config.VideoConfig, frameInterval time.Duration) error {
	ebiten.SetWindowSize(video.Width, video.Height)
	ebiten.SetWindowTitle(video.Title)
	ebiten.SetFullscreen(video.Fullscreen)
	ebiten.SetWindowClosingHandled(true)
	if frameInterval > 0 {
		ebiten.SetTPS(int(time.Second / frameInterval))
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
