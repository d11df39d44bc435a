package data

import (
	"archive/zip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/monocle-engine/monocle/internal/core/trait"
	"go.uber.org/zap/zaptest"
)

func loadTestdata(t *testing.T, name string) (*Resources, *trait.Registry) {
	t.Helper()
	reg := trait.NewRegistry()
	res := NewResources(reg, zaptest.NewLogger(t))
	if err := res.Load(os.DirFS("testdata"), name); err != nil {
		t.Fatalf("Load(%s): %v", name, err)
	}
	return res, reg
}

func TestLoadYAMLSprites(t *testing.T) {
	res, _ := loadTestdata(t, "earthball.yaml")

	s, ok := res.Sprite("earth")
	if !ok {
		t.Fatalf("sprite earth not loaded")
	}
	if s.W != 64 || s.H != 64 || s.HotX != 32 || s.HotY != 32 {
		t.Errorf("earth geometry = %dx%d hot %d,%d", s.W, s.H, s.HotX, s.HotY)
	}
	if s.Hitbox != (Rect{X: 8, Y: 8, W: 48, H: 48}) {
		t.Errorf("earth hitbox = %+v", s.Hitbox)
	}
	if s.NFrames() != 3 || s.Frames[1].X != 64 || s.Frames[1].Sheet.Path != "earth.png" {
		t.Errorf("earth frames = %+v", s.Frames)
	}

	plain, ok := res.Sprite("plain")
	if !ok {
		t.Fatalf("sprite plain not loaded")
	}
	if plain.Hitbox != (Rect{W: 16, H: 8}) {
		t.Errorf("plain hitbox should default to full box, got %+v", plain.Hitbox)
	}

	for _, name := range []string{"broken", "orphan"} {
		if _, ok := res.Sprite(name); ok {
			t.Errorf("invalid sprite %s was loaded", name)
		}
	}
}

func TestLoadYAMLKinds(t *testing.T) {
	res, reg := loadTestdata(t, "earthball.yaml")

	earth, ok := res.Kind("earth")
	if !ok {
		t.Fatalf("kind earth not loaded")
	}
	if earth.DX != 2 || earth.DY != -1 || earth.DF != 0.5 || earth.Depth != 10 {
		t.Errorf("earth defaults = %+v", earth)
	}
	if earth.Sprite == nil || earth.Sprite.Name != "earth" {
		t.Errorf("earth sprite = %v", earth.Sprite)
	}
	ball, _ := reg.Lookup("ball")
	wall, _ := reg.Lookup("wall")
	if len(earth.Traits) != 2 || earth.Traits[0] != trait.PreRender || earth.Traits[1] != ball {
		t.Errorf("earth traits = %v, want [%d %d]", earth.Traits, trait.PreRender, ball)
	}
	if len(earth.Collisions) != 1 || earth.Collisions[0] != wall {
		t.Errorf("earth collisions = %v, want [%d]", earth.Collisions, wall)
	}
	if !earth.Visible || earth.CustomRender {
		t.Errorf("earth flags visible=%v custom=%v", earth.Visible, earth.CustomRender)
	}

	ghost, ok := res.Kind("ghost")
	if !ok {
		t.Fatalf("kind ghost not loaded")
	}
	if ghost.Visible || !ghost.CustomRender {
		t.Errorf("ghost flags visible=%v custom=%v", ghost.Visible, ghost.CustomRender)
	}
	if len(ghost.Traits) != 1 || ghost.Traits[0] != trait.PreInput {
		t.Errorf("ghost traits = %v, want only pre-input", ghost.Traits)
	}
	if ghost.Sprite != nil {
		t.Errorf("ghost references unknown sprite but got %v", ghost.Sprite)
	}
	if ghost.DF != 1 {
		t.Errorf("frame-speed default = %v, want 1", ghost.DF)
	}

	if res.Count() != 3 {
		t.Errorf("Count() = %d, want 3", res.Count())
	}
	v, ok := res.Data("instructions")
	if !ok {
		t.Fatalf("data instructions not loaded")
	}
	if lines, ok := v.([]any); !ok || len(lines) != 2 {
		t.Errorf("instructions = %#v", v)
	}
}

func TestLoadJSON(t *testing.T) {
	res, reg := loadTestdata(t, "earthball.json")
	k, ok := res.Kind("crashy-earth")
	if !ok {
		t.Fatalf("kind crashy-earth not loaded")
	}
	ball, _ := reg.Lookup("ball")
	if len(k.Traits) != 1 || k.Traits[0] != ball || len(k.Collisions) != 1 || k.Collisions[0] != ball {
		t.Errorf("crashy-earth traits %v collisions %v", k.Traits, k.Collisions)
	}
	if v, _ := res.Data("title"); v != "Collision Test" {
		t.Errorf("title = %v", v)
	}
}

func TestLoadErrors(t *testing.T) {
	reg := trait.NewRegistry()
	res := NewResources(reg, zaptest.NewLogger(t))
	fsys := fstest.MapFS{
		"bad.yaml": {Data: []byte("kind: [unterminated")},
	}
	if err := res.Load(fsys, "missing.yaml"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
	if err := res.Load(fsys, "bad.yaml"); err == nil {
		t.Errorf("malformed file loaded without error")
	}
}

func TestUnload(t *testing.T) {
	res, _ := loadTestdata(t, "earthball.yaml")
	if err := res.Unload(os.DirFS("testdata"), "earthball.yaml"); err != nil {
		t.Fatalf("Unload: %v", err)
	}
	if _, ok := res.Kind("earth"); ok {
		t.Errorf("kind survived unload")
	}
	if _, ok := res.Sprite("earth"); ok {
		t.Errorf("sprite survived unload")
	}
	if len(res.Spritesheets()) != 0 {
		t.Errorf("spritesheets survived unload")
	}
}

func TestSourcesSearchOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shared.txt"), []byte("dir"), 0o644); err != nil {
		t.Fatal(err)
	}
	zipPath := filepath.Join(t.TempDir(), "res.zip")
	writeZip(t, zipPath, map[string]string{
		"shared.txt":   "zip",
		"only-zip.txt": "zip only",
	})

	var src Sources
	if err := src.Add(dir); err != nil {
		t.Fatalf("Add(dir): %v", err)
	}
	if err := src.Add(zipPath); err != nil {
		t.Fatalf("Add(zip): %v", err)
	}
	defer src.Close()

	tests := []struct {
		name string
		want string
	}{
		{"shared.txt", "dir"},
		{"only-zip.txt", "zip only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.ReadFile(&src, tt.name)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
	if _, err := src.Open("nope.txt"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open(missing) error = %v", err)
	}
}

func TestSourcesRejectsFileAsDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	var src Sources
	if err := src.AddDirectory(file); err == nil {
		t.Fatalf("AddDirectory accepted a regular file")
	}
	if src.Len() != 0 {
		t.Fatalf("failed Add left a root behind")
	}
}

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 64, H: 64}
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"inside", Rect{X: 16, Y: 16, W: 8, H: 8}, true},
		{"corner overlap", Rect{X: 32, Y: 32, W: 64, H: 64}, true},
		{"touching edge", Rect{X: 64, Y: 0, W: 10, H: 10}, false},
		{"apart", Rect{X: 100, Y: 100, W: 10, H: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.o); got != tt.want {
				t.Fatalf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.o.Overlaps(base); got != tt.want {
				t.Fatalf("Overlaps not symmetric")
			}
		})
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}
