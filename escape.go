package fractal

// MaxIterations is the iteration budget for the escape-time evaluator.
// A result of 0 means the sample never escaped within the budget and is
// considered inside the set.
const MaxIterations = 100

// escapeRadiusSq is the squared modulus threshold for divergence.
const escapeRadiusSq = 4

// Escape returns the 1-based iteration at which z = z² + c crosses the
// escape threshold, or 0 if it stays bounded for [MaxIterations] steps.
// Samples with |c| > 2 escape immediately and return 1.
//
// The recurrence is computed in the decomposed real/imaginary form
// (x' = x²−y²+cx, y' = 2xy+cy) with one rounding per statement, which
// is exactly what the device shader executes; every execution strategy
// therefore produces identical counts for identical samples.
//
// Escape is pure and safe for concurrent use.
func Escape(c complex128) int {
	cx, cy := real(c), imag(c)
	if cx*cx+cy*cy > escapeRadiusSq {
		return 1
	}
	x, y := cx, cy
	for i := 0; i < MaxIterations; i++ {
		xx := x * x
		yy := y * y
		xy := x * y
		x = xx - yy + cx
		y = xy + xy + cy
		if x*x+y*y > escapeRadiusSq {
			return i + 1
		}
	}
	return 0
}
