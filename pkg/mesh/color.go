package mesh

import (
	"math/rand/v2"

	"github.com/Faultbox/meshlab/pkg/math"
)

// Fixed palette entries.
var (
	White = math.Vec3{X: 1, Y: 1, Z: 1}
	Green = math.Vec3{X: 0, Y: 1, Z: 0}
)

// RandomBinaryColor returns one of the 8 colors whose channels are each 0 or 1.
// A nil r uses the process-wide source.
func RandomBinaryColor(r *rand.Rand) math.Vec3 {
	bit := func() float32 {
		if r == nil {
			return float32(rand.IntN(2))
		}
		return float32(r.IntN(2))
	}
	return math.Vec3{X: bit(), Y: bit(), Z: bit()}
}

// ColorSource produces per-triangle colors.
type ColorSource struct {
	random bool
	rng    *rand.Rand
}

// Solid returns a source that always yields White.
func Solid() *ColorSource {
	return &ColorSource{}
}

// RandomColors returns a source of random binary colors. A non-zero seed
// makes the sequence reproducible.
func RandomColors(seed uint64) *ColorSource {
	src := &ColorSource{random: true}
	if seed != 0 {
		src.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return src
}

// ColorsFor picks RandomColors when enabled and Solid otherwise.
func ColorsFor(enabled bool, seed uint64) *ColorSource {
	if enabled {
		return RandomColors(seed)
	}
	return Solid()
}

// Next returns the color for the next triangle.
func (s *ColorSource) Next() math.Vec3 {
	if s == nil || !s.random {
		return White
	}
	return RandomBinaryColor(s.rng)
}
