package fractal

// TargetOption configures a render target during creation.
//
// Example:
//
//	// Pooled strategy with its matching green-heavy scheme
//	t := fractal.NewTarget(800, fractal.NewPooled(0),
//	    fractal.WithScheme(fractal.SchemePooled),
//	    fractal.WithView(fractal.ViewLeftSpike))
type TargetOption func(*targetOptions)

// targetOptions holds optional configuration for target creation.
type targetOptions struct {
	scheme Scheme
	view   View
}

// defaultTargetOptions returns the default target options.
func defaultTargetOptions() targetOptions {
	return targetOptions{
		scheme: SchemeSequential,
		view:   ViewFullSet,
	}
}

// WithScheme sets the color scheme used when committing results.
func WithScheme(s Scheme) TargetOption {
	return func(o *targetOptions) {
		o.scheme = s
	}
}

// WithView selects the initial view region. It can be changed later
// with SetView; the change takes effect on the next rerender.
func WithView(v View) TargetOption {
	return func(o *targetOptions) {
		o.view = v
	}
}
