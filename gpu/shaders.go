package gpu

import (
	_ "embed"

	"github.com/gogpu/naga"
)

// escapeShaderSource is the WGSL compute shader implementing the
// escape-time recurrence. Compiled at first use; build failures are
// reported as *BuildError.
//
//go:embed shaders/escape.wgsl
var escapeShaderSource string

// EscapeShaderSource returns the WGSL source of the escape shader.
func EscapeShaderSource() string {
	return escapeShaderSource
}

// compileShaderToSPIRV compiles WGSL source to a SPIR-V word slice.
// SPIR-V is little-endian 32-bit words.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, err
	}

	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}
