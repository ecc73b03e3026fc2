package gpu

import (
	"strings"
	"testing"
)

// The shader constants must track the host evaluator. These checks
// catch a drift in the embedded source without needing a device.
func TestEscapeShaderSource(t *testing.T) {
	src := EscapeShaderSource()
	if src == "" {
		t.Fatal("embedded shader source is empty")
	}

	wants := []string{
		"@compute",
		"@workgroup_size(64)",
		"fn main(",
		"var<uniform> params",
		"array<vec2<f64>>",
		"var<storage, read_write> results",
		"100u",    // iteration budget
		"4.0lf",   // escape threshold, f64 literal
	}
	for _, want := range wants {
		if !strings.Contains(src, want) {
			t.Errorf("shader source missing %q", want)
		}
	}
}

func TestEscapeShader_BindingsMatchLayout(t *testing.T) {
	src := EscapeShaderSource()
	for _, binding := range []string{"@binding(0)", "@binding(1)", "@binding(2)"} {
		if strings.Count(src, binding) != 1 {
			t.Errorf("shader declares %s %d times, want 1", binding, strings.Count(src, binding))
		}
	}
	if strings.Contains(src, "@binding(3)") {
		t.Error("shader declares an unexpected fourth binding")
	}
}
