package fractal

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/fractal/internal/parallel"
)

// partitionSize is the number of samples per work item handed to the
// pool. Small enough for work stealing to balance the uneven per-pixel
// cost, large enough to amortize queue traffic.
const partitionSize = 4096

// Pooled evaluates the grid as a synchronous parallel map over a
// worker pool. Samples are evaluated out of order across workers;
// each worker writes into its own slice range, so results land in
// positional order without a gather step.
type Pooled struct {
	pool    *parallel.WorkerPool
	ownPool bool
}

// NewPooled creates the thread-pool strategy with its own pool of the
// given size (GOMAXPROCS if workers <= 0). Call Close to tear the pool
// down.
func NewPooled(workers int) *Pooled {
	return &Pooled{pool: parallel.NewWorkerPool(workers), ownPool: true}
}

// NewPooledWith creates the strategy on top of an existing pool. The
// caller keeps ownership; Close does not touch it. Use this to share
// one process-wide pool across render targets.
func NewPooledWith(pool *parallel.WorkerPool) *Pooled {
	return &Pooled{pool: pool}
}

// Label implements Strategy.
func (p *Pooled) Label() string {
	return fmt.Sprintf("Multi-threaded CPU (%d threads)", p.pool.Workers())
}

// Workers returns the effective worker count.
func (p *Pooled) Workers() int { return p.pool.Workers() }

// Evaluate implements Strategy. It blocks the caller until all
// partitions complete.
func (p *Pooled) Evaluate(ctx context.Context, g *Grid) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	samples := g.Samples()
	counts := make([]int, len(samples))

	work := make([]func(), 0, (len(samples)+partitionSize-1)/partitionSize)
	for lo := 0; lo < len(samples); lo += partitionSize {
		hi := lo + partitionSize
		if hi > len(samples) {
			hi = len(samples)
		}
		lo, hi := lo, hi
		work = append(work, func() {
			for i := lo; i < hi; i++ {
				counts[i] = Escape(samples[i].C)
			}
		})
	}

	start := time.Now()
	p.pool.ExecuteAll(work)
	return &Result{
		Counts:  counts,
		Elapsed: time.Since(start),
		Workers: p.pool.Workers(),
	}, nil
}

// Close shuts down the strategy's own pool. Shared pools passed via
// NewPooledWith are left running.
func (p *Pooled) Close() {
	if p.ownPool {
		p.pool.Close()
	}
}
