package data

import (
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/monocle-engine/monocle/internal/core/trait"
	"github.com/sugawarayuuta/sonnet"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// resmapFile is the on-disk layout of a resource map. YAML and JSON maps
// share it; optional numbers are pointers so absent keys keep defaults.
type resmapFile struct {
	Spritesheets map[string]string      `yaml:"spritesheet" json:"spritesheet"`
	Sprites      map[string]spriteEntry `yaml:"sprite" json:"sprite"`
	Kinds        map[string]kindEntry   `yaml:"kind" json:"kind"`
	Data         map[string]any         `yaml:"data" json:"data"`
}

type spriteEntry struct {
	Width        *float64     `yaml:"width" json:"width"`
	Height       *float64     `yaml:"height" json:"height"`
	HotspotX     *float64     `yaml:"hotspot-x" json:"hotspot-x"`
	HotspotY     *float64     `yaml:"hotspot-y" json:"hotspot-y"`
	HitboxX      *float64     `yaml:"hitbox-x" json:"hitbox-x"`
	HitboxY      *float64     `yaml:"hitbox-y" json:"hitbox-y"`
	HitboxWidth  *float64     `yaml:"hitbox-width" json:"hitbox-width"`
	HitboxHeight *float64     `yaml:"hitbox-height" json:"hitbox-height"`
	Frames       []frameEntry `yaml:"frames" json:"frames"`
}

type frameEntry struct {
	X           *float64 `yaml:"x" json:"x"`
	Y           *float64 `yaml:"y" json:"y"`
	Spritesheet string   `yaml:"spritesheet" json:"spritesheet"`
}

type kindEntry struct {
	DX         *float64 `yaml:"dx" json:"dx"`
	DY         *float64 `yaml:"dy" json:"dy"`
	Frame      *float64 `yaml:"frame" json:"frame"`
	FrameSpeed *float64 `yaml:"frame-speed" json:"frame-speed"`
	Depth      *float64 `yaml:"depth" json:"depth"`
	Sprite     string   `yaml:"sprite" json:"sprite"`
	Traits     []string `yaml:"traits" json:"traits"`
	Collisions []string `yaml:"collisions" json:"collisions"`
}

// Resources holds every resource loaded from resource maps, keyed by name.
// Loading the same name twice replaces the earlier resource.
type Resources struct {
	traits       *trait.Registry
	log          *zap.Logger
	spritesheets map[string]*Spritesheet
	sprites      map[string]*Sprite
	kinds        map[string]*Kind
	values       map[string]any
}

func NewResources(traits *trait.Registry, log *zap.Logger) *Resources {
	return &Resources{
		traits:       traits,
		log:          log,
		spritesheets: make(map[string]*Spritesheet),
		sprites:      make(map[string]*Sprite),
		kinds:        make(map[string]*Kind),
		values:       make(map[string]any),
	}
}

// Load parses the resource map at name in src and registers its resources.
// Entries that fail validation are logged and skipped; only an unreadable
// or unparsable file is an error.
func (r *Resources) Load(src fs.FS, name string) error {
	f, err := readResmap(src, name)
	if err != nil {
		return err
	}

	// Sections load in dependency order: sprites reference spritesheets and
	// kinds reference sprites.
	for _, key := range sortedKeys(f.Spritesheets) {
		put(r, r.spritesheets, "spritesheet", key, &Spritesheet{Name: key, Path: f.Spritesheets[key]})
	}
	for _, key := range sortedKeys(f.Sprites) {
		s, err := r.buildSprite(key, f.Sprites[key])
		if err != nil {
			r.log.Warn("skip resource", zap.Error(err))
			continue
		}
		put(r, r.sprites, "sprite", key, s)
	}
	for _, key := range sortedKeys(f.Data) {
		put(r, r.values, "data", key, f.Data[key])
	}
	for _, key := range sortedKeys(f.Kinds) {
		put(r, r.kinds, "kind", key, r.buildKind(key, f.Kinds[key]))
	}
	r.log.Debug("resource map loaded",
		zap.String("path", name),
		zap.Int("spritesheets", len(f.Spritesheets)),
		zap.Int("sprites", len(f.Sprites)),
		zap.Int("kinds", len(f.Kinds)),
		zap.Int("data", len(f.Data)),
	)
	return nil
}

// Unload removes every resource named in the resource map at name.
// Entities already holding a removed kind or sprite keep their reference.
func (r *Resources) Unload(src fs.FS, name string) error {
	f, err := readResmap(src, name)
	if err != nil {
		return err
	}
	for key := range f.Spritesheets {
		delete(r.spritesheets, key)
	}
	for key := range f.Sprites {
		delete(r.sprites, key)
	}
	for key := range f.Kinds {
		delete(r.kinds, key)
	}
	for key := range f.Data {
		delete(r.values, key)
	}
	return nil
}

// Kind returns the kind template registered under name.
func (r *Resources) Kind(name string) (*Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// Sprite returns the sprite registered under name.
func (r *Resources) Sprite(name string) (*Sprite, bool) {
	s, ok := r.sprites[name]
	return s, ok
}

// Spritesheet returns the spritesheet registered under name.
func (r *Resources) Spritesheet(name string) (*Spritesheet, bool) {
	s, ok := r.spritesheets[name]
	return s, ok
}

// Spritesheets returns every registered spritesheet ordered by name.
func (r *Resources) Spritesheets() []*Spritesheet {
	out := make([]*Spritesheet, 0, len(r.spritesheets))
	for _, key := range sortedKeys(r.spritesheets) {
		out = append(out, r.spritesheets[key])
	}
	return out
}

// Data returns the semi-structured value registered under name.
func (r *Resources) Data(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Count returns the number of loaded kinds.
func (r *Resources) Count() int {
	return len(r.kinds)
}

func readResmap(src fs.FS, name string) (*resmapFile, error) {
	raw, err := fs.ReadFile(src, name)
	if err != nil {
		return nil, fmt.Errorf("read resource map %s: %w", name, err)
	}
	var f resmapFile
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		err = sonnet.Unmarshal(raw, &f)
	default:
		err = yaml.Unmarshal(raw, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse resource map %s: %w", name, err)
	}
	return &f, nil
}

func put[V any](r *Resources, m map[string]V, class, key string, v V) {
	if _, exists := m[key]; exists {
		r.log.Warn("overwriting resource", zap.String("class", class), zap.String("name", key))
	}
	m[key] = v
}

func (r *Resources) buildSprite(name string, e spriteEntry) (*Sprite, error) {
	if e.Width == nil || e.Height == nil {
		return nil, &ResourceError{Class: "sprite", Name: name, Reason: "width and height are required"}
	}
	if e.Frames == nil {
		return nil, &ResourceError{Class: "sprite", Name: name, Reason: "frames are required"}
	}
	s := &Sprite{
		Name:   name,
		W:      int(*e.Width),
		H:      int(*e.Height),
		Frames: make([]Frame, 0, len(e.Frames)),
	}
	s.Hitbox = Rect{W: float64(s.W), H: float64(s.H)}
	if e.HotspotX != nil {
		s.HotX = int(*e.HotspotX)
	}
	if e.HotspotY != nil {
		s.HotY = int(*e.HotspotY)
	}
	if e.HitboxX != nil {
		s.Hitbox.X = float64(int(*e.HitboxX))
	}
	if e.HitboxY != nil {
		s.Hitbox.Y = float64(int(*e.HitboxY))
	}
	if e.HitboxWidth != nil {
		s.Hitbox.W = float64(int(*e.HitboxWidth))
	}
	if e.HitboxHeight != nil {
		s.Hitbox.H = float64(int(*e.HitboxHeight))
	}
	for i, fr := range e.Frames {
		if fr.X == nil || fr.Y == nil || fr.Spritesheet == "" {
			return nil, &ResourceError{Class: "sprite", Name: name, Reason: fmt.Sprintf("frame %d needs x, y and spritesheet", i)}
		}
		sheet, ok := r.spritesheets[fr.Spritesheet]
		if !ok {
			return nil, &ResourceError{Class: "sprite", Name: name, Reason: fmt.Sprintf("frame %d uses unknown spritesheet %q", i, fr.Spritesheet)}
		}
		s.Frames = append(s.Frames, Frame{Sheet: sheet, X: int(*fr.X), Y: int(*fr.Y)})
	}
	return s, nil
}

func (r *Resources) buildKind(name string, e kindEntry) *Kind {
	k := &Kind{
		Name:    name,
		DF:      1,
		Visible: true,
	}
	if e.DX != nil {
		k.DX = *e.DX
	}
	if e.DY != nil {
		k.DY = *e.DY
	}
	if e.Frame != nil {
		k.F = *e.Frame
	}
	if e.FrameSpeed != nil {
		k.DF = *e.FrameSpeed
	}
	if e.Depth != nil {
		k.Depth = int(*e.Depth)
	}
	if e.Sprite != "" {
		s, ok := r.sprites[e.Sprite]
		if !ok {
			r.log.Warn("kind specifies unknown sprite", zap.String("kind", name), zap.String("sprite", e.Sprite))
		}
		k.Sprite = s
	}

	k.Traits = make([]trait.ID, 0, len(e.Traits))
	for _, tn := range e.Traits {
		switch id := r.traits.ID(tn); id {
		case trait.Invisible:
			k.Visible = false
		case trait.Render:
			k.CustomRender = true
		default:
			if !slices.Contains(k.Traits, id) {
				k.Traits = append(k.Traits, id)
			}
		}
	}
	k.Collisions = make([]trait.ID, 0, len(e.Collisions))
	for _, tn := range e.Collisions {
		if id := r.traits.ID(tn); !slices.Contains(k.Collisions, id) {
			k.Collisions = append(k.Collisions, id)
		}
	}
	return k
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
