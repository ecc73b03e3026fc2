package fractal

// Scheme maps an escape-time count to an RGB triple. Each execution
// strategy carries its own scheme so renders are visually telling
// apart; the mapping is cosmetic and not part of the strategy contract.
//
// A count of 0 (inside the set) always maps to black. For a non-zero
// count n each channel i is
//
//	255 − min((255/n)/Div[i] + Off[i], 255)
//
// with 255/n evaluated in integer arithmetic, reproducing the reference
// renders exactly.
type Scheme struct {
	Div [3]float64
	Off [3]int
}

// Per-strategy schemes. The fast-falloff channel (divisor 4) rotates
// through red, green and blue.
var (
	// SchemeSequential emphasizes red.
	SchemeSequential = Scheme{Div: [3]float64{4, 0.8, 0.8}, Off: [3]int{0, 50, 50}}

	// SchemePooled emphasizes green.
	SchemePooled = Scheme{Div: [3]float64{0.8, 4, 0.8}, Off: [3]int{50, 50, 50}}

	// SchemeDevice emphasizes blue.
	SchemeDevice = Scheme{Div: [3]float64{0.8, 0.8, 4}, Off: [3]int{50, 50, 50}}
)

// Map returns the RGB triple for one escape-time count.
func (s Scheme) Map(n int) (r, g, b uint8) {
	if n == 0 {
		return 0, 0, 0
	}
	return s.channel(n, 0), s.channel(n, 1), s.channel(n, 2)
}

func (s Scheme) channel(n, i int) uint8 {
	v := int(float64(255/n)/s.Div[i]) + s.Off[i]
	if v > 255 {
		v = 255
	}
	return uint8(255 - v)
}
