package gpu

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildError(t *testing.T) {
	inner := errors.New("unsupported capability Float64")

	e := &BuildError{Stage: "compile", Log: "line 20: f64 requires Float64", Err: inner}
	msg := e.Error()
	for _, want := range []string{"compile", inner.Error(), e.Log} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
	if !errors.Is(e, inner) {
		t.Error("errors.Is does not reach the wrapped error")
	}

	// Without a log, the message stays on one line.
	bare := &BuildError{Stage: "pipeline", Err: inner}
	if strings.Contains(bare.Error(), "\n") {
		t.Errorf("Error() = %q, want single line", bare.Error())
	}
}
