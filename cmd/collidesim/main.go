// Command collidesim replays the two-ball collision test without a window
// and reports the frames where the balls start and stop overlapping.
package main

import (
	"embed"
	"flag"
	"fmt"
	"os"

	"github.com/monocle-engine/monocle/internal/config"
	"github.com/monocle-engine/monocle/internal/engine"
	"github.com/monocle-engine/monocle/internal/logging"
)

//go:embed collide.json
var resources embed.FS

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	frames := flag.Int("frames", 200, "give up after this many frames")
	verbose := flag.Bool("v", false, "debug logging")
	grid := flag.Bool("grid", false, "use the grid broadphase")
	flag.Parse()

	cfg := config.Defaults()
	cfg.Logging.Level = "warn"
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if *grid {
		cfg.Engine.Broadphase = "grid"
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	eng := engine.New(cfg.Engine, log)
	defer eng.Close()
	eng.AddFS("embedded", resources)
	if err := eng.Load("collide.json"); err != nil {
		return err
	}

	if title, ok := eng.Resources.Data("title"); ok {
		fmt.Println(title)
	}
	res, err := simulate(eng, *frames)
	if err != nil {
		return err
	}
	for _, f := range res.Inconsistent {
		fmt.Printf("Inconsistent collision at frame #%d\n", f)
	}
	if res.Start >= 0 {
		fmt.Printf("Collision starts at frame %d (Expected: 50)\n", res.Start)
	}
	if res.End >= 0 {
		fmt.Printf("Collision ends at frame %d (Expected: 113)\n", res.End)
	}
	return nil
}
