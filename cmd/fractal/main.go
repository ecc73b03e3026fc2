// Command fractal renders one view of the Mandelbrot set with every
// available execution strategy and writes one PNG per strategy,
// printing each strategy's diagnostic block for timing comparison.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/fractal"
	_ "github.com/gogpu/fractal/gpu" // enables the gpu strategy
)

func main() {
	var (
		size    = flag.Int("size", 800, "raster edge length in pixels")
		view    = flag.String("view", "full", "view region: full or spike")
		names   = flag.String("strategies", "cpu,pool,gpu", "comma-separated strategy names")
		outDir  = flag.String("out", ".", "output directory for PNG files")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var v fractal.View
	switch *view {
	case "full":
		v = fractal.ViewFullSet
	case "spike":
		v = fractal.ViewLeftSpike
	default:
		log.Fatalf("unknown view %q (want full or spike)", *view)
	}

	schemes := map[string]fractal.Scheme{
		fractal.StrategySequential: fractal.SchemeSequential,
		fractal.StrategyPooled:     fractal.SchemePooled,
		fractal.StrategyDevice:     fractal.SchemeDevice,
	}

	group := fractal.NewGroup()
	targets := make(map[string]*fractal.Target)
	for _, name := range strings.Split(*names, ",") {
		name = strings.TrimSpace(name)
		strategy, err := fractal.Get(name)
		if err != nil {
			log.Fatalf("strategy %q: %v", name, err)
		}
		t := fractal.NewTarget(*size, strategy,
			fractal.WithScheme(schemes[name]),
			fractal.WithView(v))
		group.Add(t)
		targets[name] = t
	}

	group.Rerender()
	group.Wait()

	failed := false
	for name, t := range targets {
		fmt.Printf("--- %s ---\n%s\n", name, t.Diagnostics())
		if !t.Done() {
			// Degraded pass (e.g. no GPU): diagnostics already explain it.
			failed = true
			continue
		}
		path := fmt.Sprintf("%s/mandelbrot-%s.png", *outDir, name)
		if err := t.Pixmap().SavePNG(path); err != nil {
			log.Fatalf("save %s: %v", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
	if failed {
		os.Exit(1)
	}
}
