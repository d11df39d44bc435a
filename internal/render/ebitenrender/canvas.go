// Package ebitenrender draws a world with ebiten and feeds ebiten input
// into the event loop.
//
// The event loop runs inside ebiten's Update, so the Canvas only records
// draw commands while a frame is built and replays the last finished frame
// from Draw.
package ebitenrender

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/monocle-engine/monocle/internal/core/event"
	"github.com/monocle-engine/monocle/internal/core/world"
	"github.com/monocle-engine/monocle/internal/data"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	_ world.Drawer    = (*Canvas)(nil)
	_ event.FrameSink = (*Canvas)(nil)
)

// placeholder fills the frame box of sprites whose sheet cannot be decoded.
var placeholder = color.RGBA{R: 255, G: 0, B: 255, A: 255}

type op uint8

const (
	opSprite op = iota
	opRect
	opText
)

type command struct {
	op    op
	sheet *data.Spritesheet
	src   image.Rectangle
	x, y  float64
	w, h  float64
	clr   color.RGBA
	text  string
}

// Canvas implements world.Drawer and event.FrameSink.
type Canvas struct {
	src fs.FS
	log *zap.Logger

	clear     color.RGBA
	recording []command
	shown     []command
	framing   bool

	images map[*data.Spritesheet]*ebiten.Image
	failed map[*data.Spritesheet]bool
}

// NewCanvas returns a canvas that decodes spritesheets from src.
func NewCanvas(src fs.FS, log *zap.Logger) *Canvas {
	return &Canvas{
		src:    src,
		log:    log,
		clear:  color.RGBA{A: 255},
		images: make(map[*data.Spritesheet]*ebiten.Image),
		failed: make(map[*data.Spritesheet]bool),
	}
}

// SetClearColor sets the background of subsequent frames.
func (c *Canvas) SetClearColor(r, g, b uint8) {
	c.clear = color.RGBA{R: r, G: g, B: b, A: 255}
}

func (c *Canvas) BeginFrame() {
	c.recording = c.recording[:0]
	c.framing = true
}

func (c *Canvas) EndFrame() {
	c.shown, c.recording = c.recording, c.shown
	c.framing = false
}

// DrawSprite records frame of s with its top-left corner at (x, y).
func (c *Canvas) DrawSprite(s *data.Sprite, x, y float64, frame int) {
	if frame < 0 || frame >= s.NFrames() {
		return
	}
	fr := s.Frames[frame]
	c.record(command{
		op:    opSprite,
		sheet: fr.Sheet,
		src:   image.Rect(fr.X, fr.Y, fr.X+s.W, fr.Y+s.H),
		x:     x,
		y:     y,
	})
}

// DrawRect records a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h float64, r, g, b uint8) {
	c.record(command{op: opRect, x: x, y: y, w: w, h: h, clr: color.RGBA{R: r, G: g, B: b, A: 255}})
}

// DrawText records a line of debug text.
func (c *Canvas) DrawText(x, y float64, text string) {
	c.record(command{op: opText, x: x, y: y, text: text})
}

func (c *Canvas) record(cmd command) {
	if !c.framing {
		c.log.Debug("draw outside of a frame dropped")
		return
	}
	c.recording = append(c.recording, cmd)
}

// Draw replays the last finished frame.
func (c *Canvas) Draw(screen *ebiten.Image) {
	screen.Fill(c.clear)
	for _, cmd := range c.shown {
		switch cmd.op {
		case opSprite:
			img := c.image(cmd.sheet)
			if img == nil {
				vector.DrawFilledRect(screen, float32(cmd.x), float32(cmd.y), float32(cmd.src.Dx()), float32(cmd.src.Dy()), placeholder, false)
				continue
			}
			opts := &ebiten.DrawImageOptions{}
			opts.GeoM.Translate(cmd.x, cmd.y)
			screen.DrawImage(img.SubImage(cmd.src).(*ebiten.Image), opts)
		case opRect:
			vector.DrawFilledRect(screen, float32(cmd.x), float32(cmd.y), float32(cmd.w), float32(cmd.h), cmd.clr, false)
		case opText:
			ebitenutil.DebugPrintAt(screen, cmd.text, int(cmd.x), int(cmd.y))
		}
	}
}

// image returns the decoded sheet, or nil when it cannot be decoded. A
// failure is logged once per sheet.
func (c *Canvas) image(sheet *data.Spritesheet) *ebiten.Image {
	if img, ok := c.images[sheet]; ok {
		return img
	}
	if c.failed[sheet] {
		return nil
	}
	decoded, err := decodeSheet(c.src, sheet)
	if err != nil {
		c.log.Warn("spritesheet unavailable", zap.String("spritesheet", sheet.Name), zap.Error(err))
		c.failed[sheet] = true
		return nil
	}
	img := ebiten.NewImageFromImage(decoded)
	c.images[sheet] = img
	return img
}

// decodeSheet decodes PNG, BMP and WebP spritesheets.
func decodeSheet(src fs.FS, sheet *data.Spritesheet) (image.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("decode %s: no resource source", sheet.Path)
	}
	f, err := src.Open(sheet.Path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", sheet.Path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", sheet.Path, err)
	}
	return img, nil
}
