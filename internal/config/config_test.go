package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[video]
title = "Earthball"

[engine]
frame_interval = "16ms"

[resources]
paths = ["res", "extra.zip"]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Video.Title != "Earthball" || cfg.Video.Width != 640 {
		t.Errorf("video = %+v", cfg.Video)
	}
	if cfg.Engine.FrameInterval != 16*time.Millisecond || cfg.Engine.InitialCapacity != 256 || cfg.Engine.Broadphase != "subscription" {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if len(cfg.Resources.Paths) != 2 || cfg.Resources.Paths[1] != "extra.zip" || cfg.Resources.Resmap != "earthball.yaml" {
		t.Errorf("resources = %+v", cfg.Resources)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"syntax", "[video"},
		{"type", "[video]\nwidth = \"wide\""},
		{"negative interval", "[engine]\nframe_interval = \"-1s\""},
		{"unknown broadphase", "[engine]\nbroadphase = \"octree\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.in)); err == nil {
				t.Fatalf("Parse(%q) succeeded", tt.in)
			}
		})
	}
}

func TestLoadAndPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monocle.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"json\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MONOCLE_CONFIG", path)
	if Path() != path {
		t.Fatalf("Path() = %q, want %q", Path(), path)
	}
	cfg, err := Load(Path())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("format = %q", cfg.Logging.Format)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("Load of a missing file succeeded")
	}
}
