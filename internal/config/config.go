package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is read when MONOCLE_CONFIG is unset.
const DefaultPath = "config/monocle.toml"

type Config struct {
	Video     VideoConfig     `toml:"video"`
	Engine    EngineConfig    `toml:"engine"`
	Resources ResourcesConfig `toml:"resources"`
	Logging   LoggingConfig   `toml:"logging"`
	Profile   ProfileConfig   `toml:"profile"`
}

type VideoConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
}

type EngineConfig struct {
	FrameInterval   time.Duration `toml:"frame_interval"`   // 0 disables frame pacing
	InitialCapacity int           `toml:"initial_capacity"` // entity arena size hint
	Broadphase      string        `toml:"broadphase"`       // "subscription" or "grid"
	GridCell        float64       `toml:"grid_cell"`        // grid cell edge in pixels
}

type ResourcesConfig struct {
	Paths  []string `toml:"paths"`  // directories and .zip files, searched in order
	Resmap string   `toml:"resmap"` // resource map loaded at startup
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu", "mem", "block", "mutex", "trace"
	Path string `toml:"path"` // output directory
}

// Path returns the config file location, honoring MONOCLE_CONFIG.
func Path() string {
	if p := os.Getenv("MONOCLE_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Engine.FrameInterval < 0 {
		return nil, fmt.Errorf("parse config: negative frame_interval %s", cfg.Engine.FrameInterval)
	}
	switch cfg.Engine.Broadphase {
	case "subscription", "grid":
	default:
		return nil, fmt.Errorf("parse config: unknown broadphase %q", cfg.Engine.Broadphase)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Video: VideoConfig{
			Title:  "Monocle",
			Width:  640,
			Height: 480,
		},
		Engine: EngineConfig{
			FrameInterval:   40 * time.Millisecond,
			InitialCapacity: 256,
			Broadphase:      "subscription",
			GridCell:        64,
		},
		Resources: ResourcesConfig{
			Paths:  []string{"res"},
			Resmap: "earthball.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
