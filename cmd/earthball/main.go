package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/monocle-engine/monocle/internal/config"
	"github.com/monocle-engine/monocle/internal/engine"
	"github.com/monocle-engine/monocle/internal/logging"
	"github.com/monocle-engine/monocle/internal/render/ebitenrender"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(title string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m %-41s \033[36;1m│\033[0m\n", title)
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main demo logic ───────────────────────────────────────────────

func run() error {
	profMode := flag.String("profile", "", "profile mode: cpu, mem, block, mutex or trace (overrides config)")
	balls := flag.Int("balls", 16, "number of balls to spawn")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *profMode != "" {
		cfg.Profile.Mode = *profMode
	}

	// 2. Init logger
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if stop := startProfile(cfg.Profile, log); stop != nil {
		defer stop()
	}

	printBanner(cfg.Video.Title)

	// 3. Resources and world
	printSection("Resources")
	eng, err := engine.Boot(cfg, log)
	if err != nil {
		return err
	}
	defer eng.Close()
	printStat("Resource roots", eng.Sources.Len())
	printStat("Kinds", eng.Resources.Count())
	printStat("Spritesheets", len(eng.Resources.Spritesheets()))
	printStat("Traits", eng.Traits.Len())

	canvas := ebitenrender.NewCanvas(eng.Sources, log)
	eng.World.SetDrawer(canvas)
	input := ebitenrender.NewInput()
	loop := eng.NewLoop(input, canvas, false)

	demo := newDemo(eng, loop, canvas, cfg.Video, log)
	if err := demo.spawn(*balls); err != nil {
		return err
	}
	demo.register(eng.Runner)
	printStat("Entities", eng.World.Len())
	printOK("earthball ready")
	fmt.Println()
	demo.printInstructions()

	// 4. Run until the window closes or ESC finishes the countdown
	game := ebitenrender.NewGame(eng.Runner, loop, canvas, input, cfg.Video.Width, cfg.Video.Height)
	if err := ebitenrender.Run(game, cfg.Video, cfg.Engine.FrameInterval); err != nil {
		return err
	}
	log.Info("earthball finished", zap.Uint64("frames", loop.Frames()))
	return nil
}

func startProfile(cfg config.ProfileConfig, log *zap.Logger) func() {
	var mode func(*profile.Profile)
	switch cfg.Mode {
	case "":
		return nil
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	case "block":
		mode = profile.BlockProfile
	case "mutex":
		mode = profile.MutexProfile
	case "trace":
		mode = profile.TraceProfile
	default:
		log.Warn("unknown profile mode ignored", zap.String("mode", cfg.Mode))
		return nil
	}
	path := cfg.Path
	if path == "" {
		path = "."
	}
	p := profile.Start(mode, profile.ProfilePath(path), profile.NoShutdownHook, profile.Quiet)
	log.Info("profiling", zap.String("mode", cfg.Mode), zap.String("path", path))
	return p.Stop
}
