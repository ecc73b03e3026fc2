package fractal

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// Job is the handle for one asynchronous render pass. It is delivered
// with the busy notification so collaborators can wait for the pass
// without polling.
type Job struct {
	done chan struct{}
}

func newJob() *Job {
	return &Job{done: make(chan struct{})}
}

// Done returns a channel that is closed when the pass completes.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the pass completes.
func (j *Job) Wait() { <-j.done }

// Target owns one raster buffer and one render life cycle.
//
// A target cycles between idle and rendering: Rerender dispatches an
// asynchronous pass that generates the sample grid for the active
// view, runs the target's strategy over it, maps counts to colors and
// commits the pixels. Pixel commits happen strictly after the whole
// pass is computed; there is no partial painting.
//
// The raster buffer is written only by the pass goroutine while a pass
// is in flight. A redraw path should read the buffer only when Done
// reports true.
type Target struct {
	size     int
	strategy Strategy
	scheme   Scheme
	pixmap   *Pixmap

	// done reports whether the raster holds a complete committed
	// render. Atomic so the redraw path never observes a half-written
	// buffer: it is cleared before a pass starts writing and set only
	// after the last pixel commit.
	done atomic.Bool

	mu         sync.Mutex
	view       View
	diag       string
	rendering  bool
	pendingJob *Job
	busyFns    []func(*Job)
	doneFns    []func()
}

// NewTarget creates a render target with a size×size raster buffer.
// The buffer is created once and mutated in place on each rerender.
func NewTarget(size int, strategy Strategy, opts ...TargetOption) *Target {
	o := defaultTargetOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Target{
		size:     size,
		strategy: strategy,
		scheme:   o.scheme,
		view:     o.view,
		pixmap:   NewPixmap(size, size),
	}
}

// Size returns the raster edge length.
func (t *Target) Size() int { return t.size }

// Strategy returns the target's execution strategy.
func (t *Target) Strategy() Strategy { return t.strategy }

// Pixmap returns the target's raster buffer. Read it only when Done
// reports true; while a pass is in flight the buffer is owned by the
// pass goroutine.
func (t *Target) Pixmap() *Pixmap { return t.pixmap }

// SetView selects the view region. The change takes effect at grid
// generation time of the next rerender; no repaint happens here.
func (t *Target) SetView(v View) {
	t.mu.Lock()
	t.view = v
	t.mu.Unlock()
}

// View returns the active view region.
func (t *Target) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// Done reports whether the raster holds a complete committed render.
func (t *Target) Done() bool { return t.done.Load() }

// Rendering reports whether a render pass has been dispatched and not
// yet completed.
func (t *Target) Rendering() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rendering
}

// Diagnostics returns the diagnostic text of the last completed pass:
// strategy label, grid dimensions and elapsed time, or the failure
// description for a degraded pass. Empty while a pass is in flight.
func (t *Target) Diagnostics() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.diag
}

// OnBusy registers a callback fired at dispatch time of every pass,
// carrying the pass's job handle. Callbacks run on the goroutine that
// triggered the dispatch.
func (t *Target) OnBusy(fn func(*Job)) {
	t.mu.Lock()
	t.busyFns = append(t.busyFns, fn)
	t.mu.Unlock()
}

// OnDone registers a callback fired when a pass completes, after the
// done flag and diagnostics are published. Callbacks run on the pass
// goroutine.
func (t *Target) OnDone(fn func()) {
	t.mu.Lock()
	t.doneFns = append(t.doneFns, fn)
	t.mu.Unlock()
}

// Rerender triggers one asynchronous render pass and returns its job
// handle. It never blocks on the computation.
//
// Overlapping passes per target are disallowed: a call made while a
// pass is in flight coalesces into a single follow-up pass that starts
// only after the current one commits. The follow-up reads the view
// active at its own grid-generation time, so the latest selection
// wins. Repeated calls during one in-flight pass all return the same
// follow-up job.
func (t *Target) Rerender() *Job {
	t.mu.Lock()
	if t.rendering {
		if t.pendingJob == nil {
			t.pendingJob = newJob()
		}
		j := t.pendingJob
		t.mu.Unlock()
		return j
	}
	j := newJob()
	t.rendering = true
	t.diag = ""
	busyFns := slices.Clone(t.busyFns)
	t.mu.Unlock()

	t.done.Store(false)
	for _, fn := range busyFns {
		fn(j)
	}
	go t.run(j)
	return j
}

// run executes one render pass: grid generation, strategy execution,
// color mapping and pixel commit, then publishes completion.
func (t *Target) run(j *Job) {
	t.mu.Lock()
	view := t.view
	t.mu.Unlock()

	grid := NewGrid(t.size, view)
	res, err := t.strategy.Evaluate(context.Background(), grid)

	var diag string
	if err != nil {
		// Degraded pass: no pixels are committed and the done flag
		// stays false, so a redraw never presents stale data. The
		// completion notification still fires and the target returns
		// to idle.
		Logger().Warn("fractal: render pass degraded",
			"strategy", t.strategy.Label(),
			"view", view.String(),
			"error", err)
		diag = fmt.Sprintf("%s\nrender failed: %v", t.strategy.Label(), err)
	} else {
		for i, s := range grid.Samples() {
			r, g, b := t.scheme.Map(res.Counts[i])
			t.pixmap.Set(s.X, s.Y, r, g, b)
		}
		ns := res.Elapsed.Nanoseconds()
		diag = fmt.Sprintf("%s\n%dx%d px\n%d ns\n%g ms\n%g s",
			t.strategy.Label(), t.size, t.size,
			ns, float64(ns)/1e6, float64(ns)/1e9)
		t.done.Store(true)
		Logger().Info("fractal: render pass complete",
			"strategy", t.strategy.Label(),
			"view", view.String(),
			"size", t.size,
			"elapsed", res.Elapsed)
	}

	t.mu.Lock()
	t.diag = diag
	next := t.pendingJob
	t.pendingJob = nil
	if next == nil {
		t.rendering = false
	}
	doneFns := slices.Clone(t.doneFns)
	busyFns := slices.Clone(t.busyFns)
	t.mu.Unlock()

	// A pending follow-up announces itself before this pass announces
	// completion, so an aggregate busy count never dips to zero while
	// the target still reports rendering.
	if next != nil {
		t.done.Store(false)
		for _, fn := range busyFns {
			fn(next)
		}
	}

	close(j.done)
	for _, fn := range doneFns {
		fn()
	}

	if next != nil {
		go t.run(next)
	}
}
