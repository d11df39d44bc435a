package data

// Spritesheet names an image resource. Decoding the image is left to the
// rendering backend, which opens Path through the same resource sources.
type Spritesheet struct {
	Name string
	Path string
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether r and o share any interior area. Rectangles that
// only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Frame is one animation frame cut from a spritesheet.
type Frame struct {
	Sheet *Spritesheet
	X, Y  int
}

// Sprite is an animated image with a hotspot and a hit box. The hotspot is
// the point drawn at an entity's position; the hit box is relative to the
// sprite's top-left corner.
type Sprite struct {
	Name   string
	W, H   int
	HotX   int
	HotY   int
	Hitbox Rect
	Frames []Frame
}

// NFrames returns the number of animation frames.
func (s *Sprite) NFrames() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// HitRect returns the sprite's hit box for an entity positioned at (x, y).
func (s *Sprite) HitRect(x, y float64) Rect {
	return Rect{
		X: x - float64(s.HotX) + s.Hitbox.X,
		Y: y - float64(s.HotY) + s.Hitbox.Y,
		W: s.Hitbox.W,
		H: s.Hitbox.H,
	}
}
