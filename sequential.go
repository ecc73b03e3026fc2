package fractal

import (
	"context"
	"time"
)

// Sequential evaluates the grid one sample at a time on the calling
// goroutine. It is the baseline the parallel strategies are compared
// against.
type Sequential struct{}

// NewSequential creates the single-threaded strategy.
func NewSequential() *Sequential { return &Sequential{} }

// Label implements Strategy.
func (*Sequential) Label() string { return "Single-threaded CPU" }

// Evaluate implements Strategy.
func (*Sequential) Evaluate(ctx context.Context, g *Grid) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make([]int, g.Len())
	start := time.Now()
	for i, s := range g.Samples() {
		counts[i] = Escape(s.C)
	}
	return &Result{
		Counts:  counts,
		Elapsed: time.Since(start),
		Workers: 1,
	}, nil
}
