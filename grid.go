package fractal

import "fmt"

// View selects one of the fixed rectangular regions of the complex
// plane available for rendering.
type View int

const (
	// ViewFullSet spans real ∈ [-2.5, 1.5), imag ∈ [-2.0, 2.0).
	ViewFullSet View = iota

	// ViewLeftSpike is a close-up of the spike on the negative real
	// axis, real ∈ [-1.7, -1.45), imag ∈ [-0.125, 0.125).
	ViewLeftSpike
)

// String returns the view name.
func (v View) String() string {
	switch v {
	case ViewFullSet:
		return "full set"
	case ViewLeftSpike:
		return "left spike"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// Sample pairs a pixel coordinate with its complex-plane coordinate.
// Samples are immutable once the grid is generated.
type Sample struct {
	// X and Y are the pixel coordinates, X = row, Y = column.
	X, Y int

	// C is the complex coordinate the pixel maps to.
	C complex128
}

// Grid is an ordered sequence of samples covering a size×size pixel
// domain. Enumeration order is row-major (row outer, column inner) and
// identical for every execution strategy, so result arrays from
// different strategies are positionally comparable.
type Grid struct {
	size    int
	view    View
	samples []Sample
}

// NewGrid generates the sample grid for a size×size render of the
// given view.
func NewGrid(size int, view View) *Grid {
	g := &Grid{
		size:    size,
		view:    view,
		samples: make([]Sample, 0, size*size),
	}
	n := float64(size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			var c complex128
			switch view {
			case ViewLeftSpike:
				c = complex(-1.7+0.25*float64(row)/n, -0.125+0.25*float64(col)/n)
			default:
				c = complex(-2.5+4*float64(row)/n, -2.0+4*float64(col)/n)
			}
			g.samples = append(g.samples, Sample{X: row, Y: col, C: c})
		}
	}
	return g
}

// Size returns the edge length of the pixel domain.
func (g *Grid) Size() int { return g.size }

// View returns the view the grid was generated for.
func (g *Grid) View() View { return g.view }

// Len returns the number of samples (size²).
func (g *Grid) Len() int { return len(g.samples) }

// At returns the i-th sample in row-major order.
func (g *Grid) At(i int) Sample { return g.samples[i] }

// Samples returns the row-major sample slice. Callers must not modify
// it; strategies treat the grid as read-only input.
func (g *Grid) Samples() []Sample { return g.samples }
