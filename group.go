package fractal

import "sync"

// Group fans inbound commands out to a set of render targets and
// aggregates their busy state, the way a front-end tracks "n of m
// renders still running" and disables its rerender control.
type Group struct {
	mu      sync.Mutex
	cond    *sync.Cond
	targets []*Target
	busy    int
}

// NewGroup creates an empty target group.
func NewGroup() *Group {
	g := &Group{}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Add registers a target with the group and hooks its busy/done
// notifications into the aggregate count.
func (g *Group) Add(t *Target) {
	t.OnBusy(func(*Job) {
		g.mu.Lock()
		g.busy++
		g.mu.Unlock()
	})
	t.OnDone(func() {
		g.mu.Lock()
		g.busy--
		g.cond.Broadcast()
		g.mu.Unlock()
	})

	g.mu.Lock()
	g.targets = append(g.targets, t)
	g.mu.Unlock()
}

// Targets returns the registered targets.
func (g *Group) Targets() []*Target {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.targets
}

// SetView applies a view selection to every target. It takes effect on
// each target's next rerender; nothing is repainted here.
func (g *Group) SetView(v View) {
	for _, t := range g.Targets() {
		t.SetView(v)
	}
}

// Rerender triggers one pass on every target and returns the job
// handles in registration order.
func (g *Group) Rerender() []*Job {
	targets := g.Targets()
	jobs := make([]*Job, 0, len(targets))
	for _, t := range targets {
		jobs = append(jobs, t.Rerender())
	}
	return jobs
}

// Busy returns the number of targets with a pass in flight.
func (g *Group) Busy() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

// Rendering reports whether any target has a pass in flight.
// Collaborators disable their rerender command while this is true.
func (g *Group) Rendering() bool {
	return g.Busy() > 0
}

// Wait blocks until no target has a pass in flight.
func (g *Group) Wait() {
	g.mu.Lock()
	for g.busy > 0 {
		g.cond.Wait()
	}
	g.mu.Unlock()
}
