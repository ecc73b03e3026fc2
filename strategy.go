package fractal

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStrategyNotAvailable is returned by Get for unregistered names.
var ErrStrategyNotAvailable = errors.New("fractal: strategy not available")

// Result holds the output of one strategy pass over a grid.
type Result struct {
	// Counts holds one escape-time count per sample, in grid order.
	Counts []int

	// Elapsed is the wall-clock duration of the pass.
	Elapsed time.Duration

	// Workers is the number of CPU workers used, 1 for the sequential
	// strategy and 0 for device execution.
	Workers int
}

// Strategy evaluates the escape-time function over a sample grid.
//
// Implementations must not mutate the grid, must return counts in the
// grid's row-major order, and must produce counts identical to
// [Escape] for every sample regardless of execution order.
type Strategy interface {
	// Label returns a human-readable strategy description for
	// diagnostics (e.g. "Single-threaded CPU").
	Label() string

	// Evaluate runs one pass over the grid and reports per-sample
	// counts plus elapsed wall-clock time. It blocks until the whole
	// grid is evaluated.
	Evaluate(ctx context.Context, g *Grid) (*Result, error)
}

// Factory creates a new strategy instance.
type Factory func() Strategy

// Built-in strategy names. The gpu strategy registers under "gpu" when
// package gpu is imported.
const (
	StrategySequential = "cpu"
	StrategyPooled     = "pool"
	StrategyDevice     = "gpu"
)

var (
	registryMu sync.RWMutex
	strategies = make(map[string]Factory)
)

// Register registers a strategy factory under the given name,
// replacing any previous registration. It is typically called from
// init functions, such as the one in package gpu.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	strategies[name] = factory
}

// Unregister removes a strategy from the registry. Useful for tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(strategies, name)
}

// Available returns the registered strategy names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	return names
}

// Get returns a new instance of the named strategy.
func Get(name string) (Strategy, error) {
	registryMu.RLock()
	factory, ok := strategies[name]
	registryMu.RUnlock()
	if !ok {
		return nil, ErrStrategyNotAvailable
	}
	return factory(), nil
}

func init() {
	Register(StrategySequential, func() Strategy { return NewSequential() })
	Register(StrategyPooled, func() Strategy { return NewPooled(0) })
}
