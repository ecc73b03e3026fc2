package fractal

import "testing"

func TestEscape_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		c    complex128
		want int
	}{
		{"origin never escapes", complex(0, 0), 0},
		{"outside radius escapes immediately", complex(3, 0), 1},
		{"minus one is in the set", complex(-1, 0), 0},
		{"one escapes at step two", complex(1, 0), 2}, // 1 → 2 → 5
		{"far negative", complex(-2.5, -2.0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.c); got != tt.want {
				t.Errorf("Escape(%v) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestEscape_ResultRange(t *testing.T) {
	g := NewGrid(64, ViewFullSet)
	for _, s := range g.Samples() {
		n := Escape(s.C)
		if n < 0 || n > MaxIterations {
			t.Fatalf("Escape(%v) = %d, outside [0, %d]", s.C, n, MaxIterations)
		}
	}
}

func TestEscape_Deterministic(t *testing.T) {
	cs := []complex128{
		complex(0.25, 0.5),
		complex(-0.75, 0.1),
		complex(-1.7, 0),
		complex(0.3, 0.6),
	}
	for _, c := range cs {
		first := Escape(c)
		for i := 0; i < 10; i++ {
			if got := Escape(c); got != first {
				t.Fatalf("Escape(%v) changed between calls: %d then %d", c, first, got)
			}
		}
	}
}

// Points in the main cardioid and the period-2 bulb never escape, so
// the evaluator must report 0 for them regardless of the budget.
func TestEscape_InsideSet(t *testing.T) {
	inside := []complex128{
		complex(0, 0),
		complex(-0.1, 0.1),
		complex(0.2, 0.2),
		complex(-1, 0),    // center of the period-2 bulb
		complex(-1.1, 0.1),
		complex(0.25, 0), // cardioid cusp
	}
	for _, c := range inside {
		if got := Escape(c); got != 0 {
			t.Errorf("Escape(%v) = %d, want 0", c, got)
		}
	}
}
