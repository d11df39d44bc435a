// Package engine wires the trait registry, resource sources, resources and
// world into one value, the way every program starts up.
package engine

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/monocle-engine/monocle/internal/config"
	"github.com/monocle-engine/monocle/internal/core/event"
	"github.com/monocle-engine/monocle/internal/core/system"
	"github.com/monocle-engine/monocle/internal/core/trait"
	"github.com/monocle-engine/monocle/internal/core/world"
	"github.com/monocle-engine/monocle/internal/data"
	"go.uber.org/zap"
)

type Engine struct {
	Traits    *trait.Registry
	Sources   *data.Sources
	Resources *data.Resources
	World     *world.World
	Runner    *system.Runner

	cfg config.EngineConfig
	log *zap.Logger
}

// New returns an engine with no resource roots and an empty world.
func New(cfg config.EngineConfig, log *zap.Logger) *Engine {
	traits := trait.NewRegistry()
	res := data.NewResources(traits, log)
	w := world.New(traits, res, nil, cfg.InitialCapacity, log)
	if cfg.Broadphase == "grid" {
		w.SetBroadphase(world.NewGridBroadphase(w, cfg.GridCell))
	}
	return &Engine{
		Traits:    traits,
		Sources:   &data.Sources{},
		Resources: res,
		World:     w,
		Runner:    system.NewRunner(),
		cfg:       cfg,
		log:       log,
	}
}

// Boot builds an engine from the full configuration: it registers every
// resource path and loads the startup resource map.
func Boot(cfg *config.Config, log *zap.Logger) (*Engine, error) {
	e := New(cfg.Engine, log)
	for _, p := range cfg.Resources.Paths {
		if err := e.Sources.Add(p); err != nil {
			e.Close()
			return nil, fmt.Errorf("resources: %w", err)
		}
	}
	if cfg.Resources.Resmap != "" {
		if err := e.Load(cfg.Resources.Resmap); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

// AddFS registers an extra resource root, searched after the existing ones.
func (e *Engine) AddFS(name string, fsys fs.FS) {
	e.Sources.AddFS(name, fsys)
}

// Load reads a resource map through the engine's sources.
func (e *Engine) Load(resmap string) error {
	if err := e.Resources.Load(e.Sources, resmap); err != nil {
		return fmt.Errorf("load resources: %w", err)
	}
	e.log.Info("resources loaded",
		zap.String("resmap", resmap),
		zap.Int("kinds", e.Resources.Count()),
		zap.Int("traits", e.Traits.Len()),
	)
	return nil
}

// NewLoop returns an event loop over the engine's world. paced selects the
// configured frame interval; hosts that pace frames themselves pass false.
func (e *Engine) NewLoop(input event.InputSource, frame event.FrameSink, paced bool) *event.Loop {
	var interval time.Duration
	if paced {
		interval = e.cfg.FrameInterval
	}
	return event.NewLoop(e.World, input, frame, interval, e.log)
}

// Run drives loop frame by frame until it quits or maxFrames frames have
// run. maxFrames <= 0 means no limit. It returns the number of frames run.
func (e *Engine) Run(loop *event.Loop, maxFrames int) int {
	n := 0
	for maxFrames <= 0 || n < maxFrames {
		if !e.Runner.RunFrame(loop) {
			break
		}
		n++
	}
	return n
}

// Close releases the resource sources.
func (e *Engine) Close() error {
	return e.Sources.Close()
}
