// resmapconv converts resource maps between YAML and JSON. The format of
// each side is taken from its file extension.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/monocle-engine/monocle/internal/config"
	"github.com/monocle-engine/monocle/internal/core/trait"
	"github.com/monocle-engine/monocle/internal/data"
	"github.com/monocle-engine/monocle/internal/logging"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: resmapconv <input.yaml|json> <output.yaml|json>")
		os.Exit(1)
	}
	in, out := os.Args[1], os.Args[2]

	log, err := logging.New(config.Defaults().Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	// Load the input once through the engine's loader so broken entries are
	// reported before anything is written.
	res := data.NewResources(trait.NewRegistry(), log)
	if err := res.Load(os.DirFS(filepath.Dir(in)), filepath.Base(in)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	converted, err := convert(raw, formatOf(in), formatOf(out))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, converted, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d kinds, %d spritesheets)\n", out, res.Count(), len(res.Spritesheets()))
}
