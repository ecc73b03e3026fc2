// Command fractalweb serves the three strategy renders over HTTP: full
// rasters and downscaled previews as PNG, a rerender/select-view
// command endpoint, and busy/done notifications over a websocket. It
// is the thin presentation collaborator in front of the render
// targets; all rendering state lives in the fractal package.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/fractal"
	_ "github.com/gogpu/fractal/gpu" // enables the gpu strategy
)

const previewSize = 200

type server struct {
	group   *fractal.Group
	targets map[string]*fractal.Target
	hub     *hub
}

func main() {
	var (
		addr  = flag.String("addr", ":8080", "listen address")
		size  = flag.Int("size", 800, "raster edge length in pixels")
		names = flag.String("strategies", "cpu,pool,gpu", "comma-separated strategy names")
	)
	flag.Parse()

	fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	schemes := map[string]fractal.Scheme{
		fractal.StrategySequential: fractal.SchemeSequential,
		fractal.StrategyPooled:     fractal.SchemePooled,
		fractal.StrategyDevice:     fractal.SchemeDevice,
	}

	s := &server{
		group:   fractal.NewGroup(),
		targets: make(map[string]*fractal.Target),
		hub:     newHub(),
	}

	for _, name := range strings.Split(*names, ",") {
		name = strings.TrimSpace(name)
		strategy, err := fractal.Get(name)
		if err != nil {
			log.Fatalf("strategy %q: %v", name, err)
		}
		t := fractal.NewTarget(*size, strategy, fractal.WithScheme(schemes[name]))
		s.group.Add(t)
		s.targets[name] = t

		name := name
		t.OnBusy(func(*fractal.Job) {
			s.hub.broadcast(event{Type: "busy", Target: name, Busy: s.group.Busy()})
		})
		t.OnDone(func() {
			s.hub.broadcast(event{Type: "done", Target: name, Busy: s.group.Busy()})
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /render/{name}", s.handleRender(false))
	mux.HandleFunc("GET /preview/{name}", s.handleRender(true))
	mux.HandleFunc("POST /rerender", s.handleRerender)
	mux.HandleFunc("/ws", s.hub.handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// First pass so there is something to look at.
	s.group.Rerender()

	log.Printf("listening on http://localhost%s", *addr)
	log.Fatal(srv.ListenAndServe())
}

// handleRerender applies an optional view selection to all targets and
// triggers one pass on each. Rejected while any target is rendering,
// mirroring how a front-end disables its rerender control.
func (s *server) handleRerender(w http.ResponseWriter, r *http.Request) {
	if s.group.Rendering() {
		http.Error(w, "render in progress", http.StatusConflict)
		return
	}
	switch view := r.FormValue("view"); view {
	case "full":
		s.group.SetView(fractal.ViewFullSet)
	case "spike":
		s.group.SetView(fractal.ViewLeftSpike)
	case "":
		// Keep the current view.
	default:
		http.Error(w, fmt.Sprintf("unknown view %q", view), http.StatusBadRequest)
		return
	}
	s.group.Rerender()
	w.WriteHeader(http.StatusAccepted)
}

// handleRender serves one target's raster as PNG. Previews are
// downscaled with Catmull-Rom resampling. While a target has no
// committed render yet, 404 lets the page show its placeholder.
func (s *server) handleRender(preview bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := s.targets[r.PathValue("name")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if !t.Done() {
			http.Error(w, "render not complete", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		if !preview {
			if err := t.Pixmap().EncodePNG(w); err != nil {
				log.Println(err)
			}
			return
		}

		src := t.Pixmap().ToImage()
		dst := image.NewRGBA(image.Rect(0, 0, previewSize, previewSize))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		if err := encodePNG(w, dst); err != nil {
			log.Println(err)
		}
	}
}

func (s *server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}
