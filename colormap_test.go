package fractal

import "testing"

func TestScheme_InsideIsBlack(t *testing.T) {
	for _, s := range []Scheme{SchemeSequential, SchemePooled, SchemeDevice} {
		r, g, b := s.Map(0)
		if r != 0 || g != 0 || b != 0 {
			t.Errorf("Map(0) = (%d, %d, %d), want black", r, g, b)
		}
	}
}

func TestScheme_SpotValues(t *testing.T) {
	tests := []struct {
		name    string
		scheme  Scheme
		n       int
		r, g, b uint8
	}{
		// n=1: 255/1 = 255. Emphasized channel 255/4 = 63, the
		// others int(255/0.8)+50 clamp to 255 and go fully dark.
		{"sequential n=1", SchemeSequential, 1, 192, 0, 0},
		{"pooled n=1", SchemePooled, 1, 0, 142, 0},
		{"device n=1", SchemeDevice, 1, 0, 0, 142},

		// n=5: 255/5 = 51 in integer arithmetic.
		{"sequential n=5", SchemeSequential, 5, 243, 142, 142},

		// n=100: 255/100 = 2, well below every clamp.
		{"sequential n=100", SchemeSequential, 100, 255, 203, 203},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := tt.scheme.Map(tt.n)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("Map(%d) = (%d, %d, %d), want (%d, %d, %d)",
					tt.n, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

// The channel value is clamped before the 255−v inversion, so each
// channel stays within [0, 255−Off] for every count in the budget and
// never wraps around the uint8 range.
func TestScheme_ChannelBounds(t *testing.T) {
	for n := 1; n <= MaxIterations; n++ {
		for _, s := range []Scheme{SchemeSequential, SchemePooled, SchemeDevice} {
			r, g, b := s.Map(n)
			for i, ch := range []uint8{r, g, b} {
				if max := 255 - s.Off[i]; int(ch) > max {
					t.Fatalf("scheme %v Map(%d) channel %d = %d, above %d",
						s, n, i, ch, max)
				}
			}
		}
	}

	// Tiny divisor drives every channel to the clamp.
	s := Scheme{Div: [3]float64{0.001, 0.001, 0.001}}
	if r, g, b := s.Map(1); r != 0 || g != 0 || b != 0 {
		t.Errorf("clamped Map(1) = (%d, %d, %d), want (0, 0, 0)", r, g, b)
	}
}
