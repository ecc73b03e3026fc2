// Package fractal computes escape-time renders of the Mandelbrot set
// using interchangeable execution strategies and compares their timing.
//
// # Overview
//
// A render evaluates, for every sample of a square complex-plane grid,
// the iteration at which the quadratic recurrence z = z² + c escapes a
// fixed radius. The evaluation is embarrassingly parallel but each
// pixel has a different cost, which makes it a useful benchmark for
// execution strategies. Three strategies share the exact same
// evaluator logic:
//
//   - Sequential: one sample at a time on the calling goroutine
//   - Pooled: a synchronous parallel map over a worker pool
//   - Device (package gpu): a compute-shader transform on the GPU
//
// # Quick Start
//
//	strategy, _ := fractal.Get("pool")
//	target := fractal.NewTarget(800, strategy)
//	target.SetView(fractal.ViewFullSet)
//	job := target.Rerender()
//	job.Wait()
//	target.Pixmap().SavePNG("mandelbrot.png")
//
// # Architecture
//
// The root package holds the evaluator, grid generation, color mapping
// and the render session controller. internal/parallel provides the
// worker pool used by the pooled strategy. Package gpu provides the
// device strategy via gogpu/wgpu and registers itself on import:
//
//	import _ "github.com/gogpu/fractal/gpu" // enables the gpu strategy
//
// The package produces no log output by default; call SetLogger to
// enable diagnostics.
package fractal
