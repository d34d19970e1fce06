package output

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// MaxComponent is the largest value a tone mapped channel may take. It keeps
// Quantize below 256.
const MaxComponent = 0.999

// Tonemap converts an accumulated linear color into display space: the sum is
// averaged over samples, gamma corrected with gamma 2 and clamped to
// [0, MaxComponent].
func Tonemap(sum core.Color, samples int) core.Color {
	if samples <= 0 {
		return core.Color{}
	}

	scale := 1.0 / float64(samples)
	return core.NewVec3(
		gammaCorrect(sum.X*scale),
		gammaCorrect(sum.Y*scale),
		gammaCorrect(sum.Z*scale),
	).Clamp(0, MaxComponent)
}

// gammaCorrect applies gamma 2. Negative input maps to black.
func gammaCorrect(c float64) float64 {
	if c <= 0 || math.IsNaN(c) {
		return 0
	}
	return math.Sqrt(c)
}

// Quantize maps a tone mapped component to an 8-bit channel value
func Quantize(c float64) uint8 {
	c = math.Max(0, math.Min(MaxComponent, c))
	return uint8(256 * c)
}

// QuantizeColor maps a tone mapped color to 8-bit red, green and blue
func QuantizeColor(c core.Color) (r, g, b uint8) {
	return Quantize(c.X), Quantize(c.Y), Quantize(c.Z)
}
