package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/conv2d/internal/tensor"
)

// KaimingUniform fills a new tensor with values from U(-bound, bound) where
//
//	gain  = sqrt(2 / (1 + a²))
//	bound = gain * sqrt(3 / fan_in)
//
// With a = sqrt(5), the default for convolution weights, bound is 1/sqrt(fan_in).
// A nil rng uses the global math/rand source.
//
// References:
//   - "Delving Deep into Rectifiers" (He et al., 2015)
func KaimingUniform(shape tensor.Shape, fanIn int, a float64, rng *rand.Rand) (*tensor.RawTensor, error) {
	return tensor.Uniform(shape, KaimingBound(fanIn, a), rng)
}

// KaimingBound returns the half-width of the KaimingUniform distribution.
func KaimingBound(fanIn int, a float64) float64 {
	gain := math.Sqrt(2.0 / (1.0 + a*a))
	return gain * math.Sqrt(3.0/float64(fanIn))
}
