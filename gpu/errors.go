package gpu

import (
	"errors"
	"fmt"
)

// Package errors.
var (
	// ErrNoDevice is returned when no usable GPU adapter is found.
	ErrNoDevice = errors.New("gpu: no usable GPU adapter")

	// ErrClosed is returned when the strategy is used after Close.
	ErrClosed = errors.New("gpu: device strategy is closed")
)

// BuildError reports that the device program could not be built. It
// carries the failing stage and the compiler or driver output so a
// degraded render pass can surface full diagnostics without crashing.
type BuildError struct {
	// Stage is the build step that failed ("compile", "module",
	// "pipeline").
	Stage string

	// Log is the compiler or driver output, when available.
	Log string

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *BuildError) Error() string {
	if e.Log != "" {
		return fmt.Sprintf("gpu: shader build failed at %s: %v\n%s", e.Stage, e.Err, e.Log)
	}
	return fmt.Sprintf("gpu: shader build failed at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error { return e.Err }
